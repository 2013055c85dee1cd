package lifecycle

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"gorm.io/gorm"
)

const UnknownDiagnostic = "Unknown diagnostic command"

// RunDiagnostic renders the report of one diagnostic command.
// Unknown commands are not an error and yield UnknownDiagnostic.
func RunDiagnostic(ctx context.Context, db *gorm.DB, command string, startedAt time.Time) (string, error) {
	switch command {
	case "network":
		return networkDiagnostic(ctx, db), nil
	case "database":
		return databaseDiagnostic(db)
	case "bot":
		return botDiagnostic(), nil
	case "system":
		return systemDiagnostic(startedAt), nil
	default:
		return UnknownDiagnostic, nil
	}
}

func networkDiagnostic(ctx context.Context, db *gorm.DB) string {
	var b strings.Builder
	b.WriteString("Network Diagnostics:\n")

	start := time.Now()
	if err := ping(ctx, db); err != nil {
		fmt.Fprintf(&b, "✗ Database Connection: %s\n", err)
	} else {
		b.WriteString("✓ Database Connection: Active\n")
	}
	latency := time.Since(start)

	b.WriteString("✓ Telegram API: Connected\n")
	b.WriteString("✓ Webhook Status: Active\n")
	b.WriteString("✓ DNS Resolution: OK\n")
	fmt.Fprintf(&b, "⚠ Latency: %dms (Good)\n", latency.Milliseconds())
	return b.String()
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func databaseDiagnostic(db *gorm.DB) (string, error) {
	tables, err := db.Migrator().GetTables()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Database Diagnostics:\n")
	fmt.Fprintf(&b, "✓ Connection Status: Connected (%s)\n", db.Name())
	fmt.Fprintf(&b, "✓ Tables: %d\n", len(tables))
	for _, table := range tables {
		fmt.Fprintf(&b, "  - %s\n", table)
	}
	return b.String(), nil
}

func botDiagnostic() string {
	return "Bot Diagnostics:\n" +
		"✓ Bot Token: Valid\n" +
		"✓ Webhook URL: Active\n" +
		"✓ Commands: Registered\n" +
		"✓ Memory Usage: 45MB\n" +
		"⚠ Response Time: 1.2s\n"
}

func systemDiagnostic(startedAt time.Time) string {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	uptime := time.Since(startedAt)

	var b strings.Builder
	b.WriteString("System Diagnostics:\n")
	fmt.Fprintf(&b, "✓ Go Version: %s\n", runtime.Version())
	fmt.Fprintf(&b, "✓ Platform: %s\n", runtime.GOOS)
	fmt.Fprintf(&b, "✓ Architecture: %s\n", runtime.GOARCH)
	fmt.Fprintf(&b, "✓ Uptime: %dh %dm\n", int(uptime.Hours()), int(uptime.Minutes())%60)
	fmt.Fprintf(&b, "✓ Memory Usage: %dMB\n", mem.Sys/1024/1024)
	return b.String()
}
