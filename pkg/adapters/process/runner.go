package process

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/artifact"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/config"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// DefaultGracePeriod is how long a canceled integrator gets to exit after the
// interrupt before it is killed.
const DefaultGracePeriod = 5 * time.Second

// Request is written to the integrator's stdin.
type Request struct {
	Constants  config.PhysicalConstants    `json:"physical_constants"`
	Parameters config.SimulationParameters `json:"simulation_parameters"`
}

// Response is read from the integrator's stdout. Profile values may be null
// (NaN) or "+Inf"/"-Inf".
type Response struct {
	Pressure []float64                   `json:"pressure"`
	Profiles map[string][]artifact.Value `json:"profiles"`
}

// Integrator implements ports.Integrator by running an external executable once
// per configuration, exchanging JSON over stdin and stdout.
type Integrator struct {
	cfg   Config
	grace time.Duration
}

// Option configures the integrator.
type Option func(*Integrator)

// WithGracePeriod overrides DefaultGracePeriod.
func WithGracePeriod(d time.Duration) Option {
	return func(i *Integrator) {
		i.grace = d
	}
}

// WithBaseDir sets the working directory of the process, overriding Config.Dir.
func WithBaseDir(dir string) Option {
	return func(i *Integrator) {
		i.cfg.Dir = dir
	}
}

// New creates an Integrator from cfg.
func New(cfg Config, opts ...Option) *Integrator {
	i := &Integrator{cfg: cfg, grace: DefaultGracePeriod}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Integrate runs the executable. A non-zero exit, unparsable output or a
// timeout is returned as an error carrying the process's stderr.
func (i *Integrator) Integrate(ctx context.Context, c config.PhysicalConstants, p config.SimulationParameters) (domain.IntegratorOutput, error) {
	payload, err := json.Marshal(Request{Constants: c, Parameters: p})
	if err != nil {
		return domain.IntegratorOutput{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	if i.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, i.cfg.Command, i.cfg.Args...)
	cmd.Dir = i.cfg.Dir
	cmd.Env = cmd.Environ()
	for k, v := range i.cfg.Environment {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	// Ask politely first; WaitDelay escalates to a kill.
	cmd.Cancel = func() error {
		if runtime.GOOS == "windows" {
			return cmd.Process.Kill()
		}
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = i.grace

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(ctxErr, err)
		}
		return domain.IntegratorOutput{}, fmt.Errorf("integrator %s failed: %w%s", i.cfg.Command, err, stderrSuffix(&stderr))
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return domain.IntegratorOutput{}, fmt.Errorf("integrator %s returned invalid output: %w%s", i.cfg.Command, err, stderrSuffix(&stderr))
	}

	out := domain.IntegratorOutput{
		Pressure: resp.Pressure,
		Profiles: make(map[string][]float64, len(resp.Profiles)),
	}
	for name, values := range resp.Profiles {
		floats := make([]float64, len(values))
		for j, v := range values {
			floats[j] = float64(v)
		}
		out.Profiles[name] = floats
	}
	return out, nil
}

func stderrSuffix(stderr *bytes.Buffer) string {
	s := strings.TrimSpace(stderr.String())
	if s == "" {
		return ""
	}
	return ". Stderr: " + s
}
