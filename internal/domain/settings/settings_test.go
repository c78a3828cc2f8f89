package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOption(t *testing.T) {
	opt, err := NewOption(OptionSandboxMode, "yes")
	require.NoError(t, err)
	assert.Equal(t, "yes", opt.Value)

	_, err = NewOption("not_a_real_option", "x")
	assert.Error(t, err)
}

func TestSettings_Defaults(t *testing.T) {
	s := NewSettings(nil)

	assert.False(t, s.SandboxMode())
	assert.False(t, s.OnlyVendorProducts())
	assert.Empty(t, s.APIKey())
	assert.True(t, s.DefaultPrice().IsZero())
	assert.Equal(t, "0.15", s.PlatformFeeRate().StringFixed(2))
}

func TestSettings_APIKeyFollowsEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		want    string
	}{
		{
			name: "production key in production",
			options: []Option{
				{Name: OptionProductionAPIKey, Value: "prod-key"},
				{Name: OptionSandboxAPIKey, Value: "sandbox-key"},
			},
			want: "prod-key",
		},
		{
			name: "sandbox key in sandbox mode",
			options: []Option{
				{Name: OptionProductionAPIKey, Value: "prod-key"},
				{Name: OptionSandboxAPIKey, Value: "sandbox-key"},
				{Name: OptionSandboxMode, Value: "yes"},
			},
			want: "sandbox-key",
		},
		{
			name: "sandbox mode without sandbox key",
			options: []Option{
				{Name: OptionProductionAPIKey, Value: "prod-key"},
				{Name: OptionSandboxMode, Value: "yes"},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettings(tt.options)
			assert.Equal(t, tt.want, s.APIKey())
		})
	}
}

func TestSettings_MalformedDecimalFallsBack(t *testing.T) {
	s := NewSettings([]Option{
		{Name: OptionDefaultPrice, Value: "not-a-number"},
		{Name: OptionPlatformFeeRate, Value: "also-bad"},
	})
	assert.True(t, s.DefaultPrice().IsZero())
	assert.Equal(t, "0.15", s.PlatformFeeRate().StringFixed(2))
}

func TestSettings_DefaultPriceOptIn(t *testing.T) {
	s := NewSettings([]Option{
		{Name: OptionDefaultPrice, Value: "4.50"},
	})
	assert.Equal(t, "4.50", s.DefaultPrice().StringFixed(2))
}

func TestSettings_UnknownOptionIgnored(t *testing.T) {
	s := NewSettings([]Option{
		{Name: "rogue", Value: "yes"},
	})
	assert.Empty(t, s.Get("rogue"))
}
