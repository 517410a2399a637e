package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	tests := []struct {
		name string
		in   Resp
		want string
	}{
		{"ok", OK(map[string]int{"n": 1}), `{"success":true,"code":0,"msg":"OK","data":{"n":1}}`},
		{"ok nil data", OK(nil), `{"success":true,"code":0,"msg":"OK","data":{}}`},
		{"default msg", Error(CodeConflict, ""), `{"success":false,"code":409,"msg":"Conflict","data":{}}`},
		{"custom msg", Error(CodeUnauthorized, "missing token"), `{"success":false,"code":401,"msg":"missing token","data":{}}`},
		{"unknown code", Error(418, ""), `{"success":false,"code":418,"msg":"Error","data":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}
