package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecfg/internal/config"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, config.RetryBackoffLinear, p.Mode)
	assert.Equal(t, 500*time.Millisecond, p.Initial)
	assert.Equal(t, 5*time.Second, p.Max)
	assert.Equal(t, 2, p.MaxRetries)
	require.NoError(t, p.Validate())
}

func TestNewPolicy_ClampsInitial(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, 5*time.Second, 2*time.Second, 5)
	assert.Equal(t, 2*time.Second, p.Initial)
	assert.Equal(t, 2*time.Second, p.Max)
	assert.Equal(t, config.RetryBackoffFixed, p.Mode)
	assert.Equal(t, 5, p.MaxRetries)
}

func TestNewPolicy_UnknownModeFallsBack(t *testing.T) {
	p := NewPolicy("weird", 250*time.Millisecond, 500*time.Millisecond, 1)
	assert.Equal(t, config.RetryBackoffLinear, p.Mode)
}

func TestFromConfig(t *testing.T) {
	assert.Equal(t, 2, FromConfig(config.RetryConfig{}).MaxRetries)
	assert.Equal(t, 0, FromConfig(config.RetryConfig{MaxRetries: -1}).MaxRetries)
	p := FromConfig(config.RetryConfig{MaxRetries: 4, Backoff: config.RetryBackoffExponential, InitialDelay: time.Millisecond, MaxDelay: time.Second})
	assert.Equal(t, Policy{Mode: config.RetryBackoffExponential, Initial: time.Millisecond, Max: time.Second, MaxRetries: 4}, p)
}

func TestDelayModes(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		want   []time.Duration
	}{
		{"fixed", NewPolicy(config.RetryBackoffFixed, 100*time.Millisecond, 500*time.Millisecond, 3),
			[]time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond}},
		{"linear", NewPolicy(config.RetryBackoffLinear, 100*time.Millisecond, 250*time.Millisecond, 5),
			[]time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 250 * time.Millisecond, 250 * time.Millisecond}},
		{"exponential", NewPolicy(config.RetryBackoffExponential, 50*time.Millisecond, 160*time.Millisecond, 5),
			[]time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 160 * time.Millisecond, 160 * time.Millisecond}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, want := range tt.want {
				assert.Equal(t, want, tt.policy.Delay(i+1), "attempt %d", i+1)
			}
		})
	}

	p := NewPolicy(config.RetryBackoffExponential, time.Millisecond, time.Second, 1)
	assert.Equal(t, time.Duration(0), p.Delay(0))
	assert.Equal(t, time.Duration(0), p.Delay(-1))
	assert.Equal(t, time.Second, p.Delay(200))
}

func TestValidate(t *testing.T) {
	assert.Error(t, Policy{Mode: config.RetryBackoffLinear, Max: time.Second, MaxRetries: 1}.Validate())
	assert.Error(t, Policy{Mode: config.RetryBackoffLinear, Initial: time.Second, MaxRetries: 1}.Validate())
	assert.Error(t, Policy{Mode: config.RetryBackoffLinear, Initial: time.Second, Max: 2 * time.Second, MaxRetries: -1}.Validate())
}

func TestDo(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, 2)
	errBoom := errors.New("boom")

	calls := 0
	err := p.Do(context.Background(), func(int) (bool, error) {
		calls++
		if calls < 3 {
			return true, errBoom
		}
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = p.Do(context.Background(), func(int) (bool, error) {
		calls++
		return true, errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 3, calls, "first attempt plus two retries")

	calls = 0
	err = p.Do(context.Background(), func(int) (bool, error) {
		calls++
		return false, errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls, "permanent failures are not retried")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls = 0
	slow := NewPolicy(config.RetryBackoffFixed, time.Hour, time.Hour, 5)
	err = slow.Do(ctx, func(int) (bool, error) {
		calls++
		return true, errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
}
