package platform

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"

	"github.com/viralforge/publish-review-service/internal/domain"
	"github.com/viralforge/publish-review-service/internal/ports"
)

type Config struct {
	// Interpreter and the two script paths form the external command lines.
	// The original deployment runs the platform's python uploader scripts.
	Interpreter    string
	UploadScript   string
	MetadataScript string

	// StagingDir is where the uploader drops its success file; used as a
	// fallback source for the platform id when stdout yields nothing.
	StagingDir string

	CallTimeout time.Duration
}

// ScriptPublisher invokes the platform's uploader and metadata-update commands
// as external processes. Each call is a single attempt bounded by CallTimeout;
// an expired deadline surfaces as a process failure rather than a hang.
type ScriptPublisher struct {
	cfg    Config
	logger *slog.Logger
}

func NewScriptPublisher(logger *slog.Logger, cfg Config) *ScriptPublisher {
	if cfg.Interpreter == "" {
		cfg.Interpreter = "python3"
	}
	if cfg.UploadScript == "" {
		cfg.UploadScript = "upload_video.py"
	}
	if cfg.MetadataScript == "" {
		cfg.MetadataScript = "change_privacy_status.py"
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScriptPublisher{cfg: cfg, logger: logger}
}

func (p *ScriptPublisher) Publish(ctx context.Context, req ports.PublishRequest) (string, error) {
	args := []string{
		p.cfg.UploadScript,
		"--file=" + req.AssetPath,
		"--title=" + req.Title,
		"--description=" + req.Description,
		"--keywords=" + req.Keywords,
		"--privacyStatus=" + string(req.Visibility),
	}
	result := p.run(ctx, "publish", args)
	if result.err != nil {
		return "", &domain.PublishError{
			Reason:   domain.PublishReasonProcessFailure,
			ExitCode: result.exitCode,
			Detail:   result.detail(),
		}
	}
	platformID := parsePlatformID(result.stdout)
	if platformID == "" {
		platformID = readSuccessFile(p.cfg.StagingDir)
	}
	if platformID == "" {
		return "", &domain.PublishError{
			Reason:   domain.PublishReasonIdentifierUnavailable,
			ExitCode: result.exitCode,
			Detail:   "no platform id in uploader output",
		}
	}
	return platformID, nil
}

func (p *ScriptPublisher) SetVisibility(ctx context.Context, platformID string, update ports.MetadataUpdate) error {
	args := []string{
		p.cfg.MetadataScript,
		"--videoId=" + platformID,
		"--title=" + update.Title,
		"--description=" + update.Description,
		"--keywords=" + update.Keywords,
		"--privacyStatus=" + string(update.Visibility),
	}
	result := p.run(ctx, "set_visibility", args)
	if result.err != nil {
		return &domain.VisibilityError{
			ExitCode: result.exitCode,
			Detail:   result.detail(),
		}
	}
	return nil
}

type runResult struct {
	stdout   string
	stderr   string
	exitCode int
	timedOut bool
	err      error
}

func (r runResult) detail() string {
	if r.timedOut {
		return "call deadline exceeded"
	}
	if line := lastLine(r.stderr); line != "" {
		return line
	}
	if r.err != nil {
		return r.err.Error()
	}
	return ""
}

// run executes one external call to completion. stdout and stderr are
// captured for diagnostics, but success or failure is decided solely by the
// process exit status; a capture problem never masks that determination.
func (p *ScriptPublisher) run(parent context.Context, operation string, args []string) runResult {
	ctx, cancel := context.WithTimeout(parent, p.cfg.CallTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.cfg.Interpreter, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := runResult{
		stdout:   stdout.String(),
		stderr:   stderr.String(),
		exitCode: -1,
		err:      err,
	}
	if cmd.ProcessState != nil {
		result.exitCode = cmd.ProcessState.ExitCode()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.timedOut = true
		if result.err == nil {
			result.err = ctx.Err()
		}
	}

	outcome := "success"
	if result.err != nil {
		outcome = "failure"
	}
	p.logger.InfoContext(parent, "platform call finished",
		"module", "platform.script_publisher",
		"layer", "adapter",
		"operation", operation,
		"outcome", outcome,
		"exit_code", result.exitCode,
		"timed_out", result.timedOut,
		"stderr", lastLine(result.stderr),
	)
	return result
}
