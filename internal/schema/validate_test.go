package schema

import "testing"

func TestValidatePipeline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid shell pipeline",
			yaml: `
pipeline:
  name: demo
stages:
  - name: Build
    run: make build
`,
		},
		{
			name: "valid argv pipeline",
			yaml: `
pipeline:
  name: demo
stages:
  - name: Build
    command: docker
    args: ["build", "."]
`,
		},
		{
			name: "valid checkout pipeline",
			yaml: `
pipeline:
  name: demo
stages:
  - name: Checkout
    checkout:
      repository: https://example.com/demo.git
      ref: main
      depth: 1
`,
		},
		{
			name:    "missing pipeline block",
			yaml:    "stages:\n  - name: Build\n    run: make\n",
			wantErr: true,
		},
		{
			name:    "missing stages",
			yaml:    "pipeline:\n  name: demo\n",
			wantErr: true,
		},
		{
			name:    "empty stages",
			yaml:    "pipeline:\n  name: demo\nstages: []\n",
			wantErr: true,
		},
		{
			name: "stage without action",
			yaml: `
pipeline:
  name: demo
stages:
  - name: Build
`,
			wantErr: true,
		},
		{
			name: "run and checkout both set",
			yaml: `
pipeline:
  name: demo
stages:
  - name: Build
    run: make
    checkout:
      repository: https://example.com/demo.git
`,
			wantErr: true,
		},
		{
			name: "checkout without repository",
			yaml: `
pipeline:
  name: demo
stages:
  - name: Checkout
    checkout:
      ref: main
`,
			wantErr: true,
		},
		{
			name: "negative depth",
			yaml: `
pipeline:
  name: demo
stages:
  - name: Checkout
    checkout:
      repository: https://example.com/demo.git
      depth: -1
`,
			wantErr: true,
		},
		{
			name: "env values must be strings",
			yaml: `
pipeline:
  name: demo
env:
  RETRIES: 3
stages:
  - name: Build
    run: make
`,
			wantErr: true,
		},
		{
			name:    "not valid YAML",
			yaml:    "pipeline: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePipeline([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePipeline() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
