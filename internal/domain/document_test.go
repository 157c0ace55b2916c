package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    DocumentStatus
		to      DocumentStatus
		allowed bool
	}{
		{DocumentStatusUploaded, DocumentStatusProcessing, true},
		{DocumentStatusUploaded, DocumentStatusError, true},
		{DocumentStatusUploaded, DocumentStatusProcessed, false},
		{DocumentStatusProcessing, DocumentStatusProcessed, true},
		{DocumentStatusProcessing, DocumentStatusError, true},
		{DocumentStatusProcessing, DocumentStatusUploaded, false},
		{DocumentStatusProcessed, DocumentStatusProcessing, false},
		{DocumentStatusProcessed, DocumentStatusError, false},
		// error is terminal for ordinary transitions; reprocessing is a
		// separate explicit operation.
		{DocumentStatusError, DocumentStatusUploaded, false},
		{DocumentStatusError, DocumentStatusProcessing, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestDocumentStatusValid(t *testing.T) {
	assert.True(t, DocumentStatusUploaded.Valid())
	assert.True(t, DocumentStatusError.Valid())
	assert.False(t, DocumentStatus("pending").Valid())
}
