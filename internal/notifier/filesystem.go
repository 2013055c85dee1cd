package notifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/botpanel/botpanel/internal/models"

	"go.uber.org/zap"
)

// FilesystemNotifier writes each notification as a JSON file, rendered body included.
type FilesystemNotifier struct {
	directory string
}

func NewFilesystemNotifier(config models.FilesystemNotifierConfiguration) (*FilesystemNotifier, error) {
	if err := os.MkdirAll(config.Directory, 0750); err != nil {
		return nil, fmt.Errorf("failed to create notification directory: %w", err)
	}
	return &FilesystemNotifier{directory: config.Directory}, nil
}

func (f *FilesystemNotifier) NotifyFromTemplate(to string, subject string, templateName string, data any) error {
	body, err := render(templateName, data)
	if err != nil {
		return err
	}

	now := time.Now()
	content, err := json.MarshalIndent(map[string]any{
		"to":            to,
		"subject":       subject,
		"template_name": templateName,
		"args":          data,
		"body":          body,
		"timestamp":     now.UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	path := filepath.Join(f.directory, fmt.Sprintf("%d-%s.json", now.UnixNano(), templateName))
	if err = os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write notification file: %w", err)
	}

	zap.L().Debug("Notification written to filesystem", zap.String("path", path), zap.String("subject", subject))
	return nil
}
