package remarks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		remarks string
		want    string
		ok      bool
	}{
		{name: "paymentMonth", remarks: `{"paymentMonth":"Hamal"}`, want: "Hamal", ok: true},
		{name: "month fallback", remarks: `{"month":"Saur"}`, want: "Saur", ok: true},
		{name: "paymentMonth wins", remarks: `{"paymentMonth":"Jawza","month":"Saur"}`, want: "Jawza", ok: true},
		{name: "empty paymentMonth uses month", remarks: `{"paymentMonth":"","month":"Asad"}`, want: "Asad", ok: true},
		{name: "extra fields", remarks: `{"note":"cash","paymentMonth":"Hoot","receipt":12}`, want: "Hoot", ok: true},
		{name: "surrounding whitespace", remarks: "  {\"month\":\"Dalw\"}\n", want: "Dalw", ok: true},
		{name: "plain text", remarks: "not json", ok: false},
		{name: "empty", remarks: "", ok: false},
		{name: "json array", remarks: `["Hamal"]`, ok: false},
		{name: "json null", remarks: "null", ok: false},
		{name: "truncated object", remarks: `{"paymentMonth":"Ham`, ok: false},
		{name: "numeric month", remarks: `{"month":3}`, ok: false},
		{name: "no month keys", remarks: `{"receipt":"A-1"}`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MonthName(tt.remarks)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeepsBothFields(t *testing.T) {
	tag, ok := Parse(`{"paymentMonth":"Mizan","month":"Aqrab"}`)
	assert.True(t, ok)
	assert.Equal(t, "Mizan", tag.PaymentMonth)
	assert.Equal(t, "Aqrab", tag.Month)
}
