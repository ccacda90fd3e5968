package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/optsync/pkg/domain/model"
	"github.com/secmon-lab/optsync/pkg/domain/types"
)

func TestOptionUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantID  model.OptionID
		wantErr bool
	}{
		{
			name:   "numeric identifier",
			input:  `{"optionId": 10412, "value": "Backend", "isDisabled": false}`,
			wantID: "10412",
		},
		{
			name:   "string identifier",
			input:  `{"optionId": "10413", "value": "Frontend", "isDisabled": true}`,
			wantID: "10413",
		},
		{
			name:   "null identifier",
			input:  `{"optionId": null, "value": "Other"}`,
			wantID: "",
		},
		{
			name:    "object identifier",
			input:   `{"optionId": {"id": 1}, "value": "Other"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var opt model.Option
			err := json.Unmarshal([]byte(tt.input), &opt)
			if tt.wantErr {
				gt.Value(t, err).NotNil()
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, opt.ID).Equal(tt.wantID)
		})
	}
}

func TestOptionsFindPrefersEnabled(t *testing.T) {
	t.Parallel()

	opts := model.Options{
		{ID: "1", Value: "Backend", Disabled: true},
		{ID: "2", Value: "Backend"},
		{ID: "3", Value: "Legacy", Disabled: true},
	}

	gt.Value(t, opts.Find("Backend").ID).Equal(model.OptionID("2"))
	gt.Value(t, opts.Find("Legacy").ID).Equal(model.OptionID("3"))
	gt.Value(t, opts.Find("Missing")).Nil()
}

func TestOptionsValues(t *testing.T) {
	t.Parallel()

	opts := model.Options{
		{ID: "1", Value: "B"},
		{ID: "2", Value: "A", Disabled: true},
		{ID: "3", Value: "Other"},
	}

	gt.Value(t, opts.Values()).Equal([]string{"B", "A", "Other"})
	gt.Value(t, opts.EnabledValues()).Equal([]string{"B", "Other"})
	gt.Value(t, opts.String()).Equal("[B, A, Other]")
}

func TestOptionState(t *testing.T) {
	gt.Value(t, (&model.Option{Value: "A"}).State()).Equal(types.OptionStateEnabled)
	gt.Value(t, (&model.Option{Value: "A", Disabled: true}).State()).Equal(types.OptionStateDisabled)
}
