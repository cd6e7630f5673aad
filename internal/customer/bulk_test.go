package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBulkRecord(t *testing.T) {
	tests := []struct {
		name       string
		rec        BulkRecord
		wantReason string
	}{
		{name: "valid", rec: BulkRecord{Name: "Kim Minji", PhoneNumber: "010-1234-5678"}, wantReason: ""},
		{name: "valid with email", rec: BulkRecord{Name: "Lee", Email: "lee@example.com"}, wantReason: ""},
		{name: "missing name", rec: BulkRecord{PhoneNumber: "010"}, wantReason: "name is required"},
		{name: "whitespace name", rec: BulkRecord{Name: "   "}, wantReason: "name is required"},
		{name: "bad email", rec: BulkRecord{Name: "Park", Email: "not-an-email"}, wantReason: "email is not valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantReason, ValidateBulkRecord(&tt.rec))
		})
	}
}

func TestValidateBulkRecordTrims(t *testing.T) {
	rec := BulkRecord{Name: "  Choi  ", PhoneNumber: " 010-1 ", Email: " choi@example.com "}
	assert.Equal(t, "", ValidateBulkRecord(&rec))
	assert.Equal(t, "Choi", rec.Name)
	assert.Equal(t, "010-1", rec.PhoneNumber)
	assert.Equal(t, "choi@example.com", rec.Email)
}
