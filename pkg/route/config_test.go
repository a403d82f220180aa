package route

import (
	"errors"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}
	if cfg.BlockSeparator != "~" {
		t.Errorf("BlockSeparator = %q, want %q", cfg.BlockSeparator, "~")
	}
	if cfg.ParamSeparator != "=" {
		t.Errorf("ParamSeparator = %q, want %q", cfg.ParamSeparator, "=")
	}
}

func TestNewConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "defaults", opts: nil, wantErr: false},
		{name: "dash block separator", opts: []Option{WithBlockSeparator("-")}, wantErr: false},
		{name: "bang block separator", opts: []Option{WithBlockSeparator("!")}, wantErr: false},
		{name: "unsafe block separator", opts: []Option{WithBlockSeparator("@")}, wantErr: true},
		{name: "multi-char block separator", opts: []Option{WithBlockSeparator("~~")}, wantErr: true},
		{name: "empty block separator", opts: []Option{WithBlockSeparator("")}, wantErr: true},
		{name: "colon param separator", opts: []Option{WithParamSeparator(":")}, wantErr: true},
		{name: "slash param separator", opts: []Option{WithParamSeparator("/")}, wantErr: true},
		{name: "hash param separator", opts: []Option{WithParamSeparator("#")}, wantErr: true},
		{name: "plus param separator", opts: []Option{WithParamSeparator("+")}, wantErr: true},
		{name: "comma param separator", opts: []Option{WithParamSeparator(",")}, wantErr: false},
		{name: "multi-char param separator", opts: []Option{WithParamSeparator("==")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opts...)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				var ce *ConfigError
				if !errors.As(err, &ce) {
					t.Errorf("error is %T, want *ConfigError", err)
				}
			}
		})
	}
}

func TestNewConfigNoPartialConfig(t *testing.T) {
	cfg, err := NewConfig(WithBlockSeparator("-"), WithParamSeparator("/"))
	if err == nil {
		t.Fatal("expected error")
	}
	if cfg != (Config{}) {
		t.Errorf("config on error = %+v, want zero value", cfg)
	}
}
