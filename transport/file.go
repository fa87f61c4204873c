package transport

import (
	"bytes"
	"fmt"
	"sync/atomic"
	"time"

	"logward/core"
	"logward/format"
	"logward/level"

	"github.com/lixenwraith/log"
)

// FileOptions configures a file transport.
type FileOptions struct {
	// Directory holds the output files. Defaults to the current directory.
	Directory string
	// FileName is the base output name. Defaults to "logward.output".
	FileName string
	// Level is the transport's own threshold; Unset inherits the logger's.
	Level level.Level
	// MaxSizeMB rotates the file past this size.
	MaxSizeMB int64
	// MaxTotalSizeMB bounds the rotated set on disk.
	MaxTotalSizeMB int64
	// RetentionHours prunes rotated files older than this.
	RetentionHours int64
}

// FileTransport writes formatted entries to disk. Rotation, retention and
// disk-pressure handling are delegated to a dedicated log writer instance.
type FileTransport struct {
	name      string
	opts      FileOptions
	writer    *log.Logger // internal instance doing the file writing
	formatter format.Formatter
	logger    *log.Logger // operator diagnostics

	// Statistics
	totalProcessed atomic.Uint64
}

// NewFile creates a file transport.
func NewFile(name string, opts FileOptions, formatter format.Formatter, logger *log.Logger) (*FileTransport, error) {
	if formatter == nil {
		return nil, fmt.Errorf("file transport requires a formatter")
	}
	if logger == nil {
		logger = log.NewLogger()
	}
	if opts.Directory == "" {
		opts.Directory = "./"
	}
	if opts.FileName == "" {
		opts.FileName = "logward.output"
	}
	if name == "" {
		name = "file"
	}

	writerConfig := log.DefaultConfig()
	writerConfig.Directory = opts.Directory
	writerConfig.Name = opts.FileName
	writerConfig.EnableConsole = false
	writerConfig.ShowTimestamp = false // entries carry their own timestamps
	writerConfig.ShowLevel = false     // entries carry their own levels

	if opts.MaxSizeMB > 0 {
		writerConfig.MaxSizeKB = opts.MaxSizeMB * 1000
	}
	if opts.MaxTotalSizeMB > 0 {
		writerConfig.MaxTotalSizeKB = opts.MaxTotalSizeMB * 1000
	}
	if opts.RetentionHours > 0 {
		writerConfig.RetentionPeriodHrs = float64(opts.RetentionHours)
	}

	writer := log.NewLogger()
	if err := writer.ApplyConfig(writerConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize file writer: %w", err)
	}
	if err := writer.Start(); err != nil {
		return nil, fmt.Errorf("failed to start file writer: %w", err)
	}

	return &FileTransport{
		name:      name,
		opts:      opts,
		writer:    writer,
		formatter: formatter,
		logger:    logger,
	}, nil
}

func (f *FileTransport) Name() string { return f.name }

func (f *FileTransport) Level() level.Level { return f.opts.Level }

// Deliver formats one entry and hands it to the file writer.
func (f *FileTransport) Deliver(e *core.Entry) error {
	formatted, err := f.formatter.Format(e)
	if err != nil {
		return fmt.Errorf("failed to format entry: %w", err)
	}

	// Strip the trailing newline, the writer adds its own.
	f.writer.Message(string(bytes.TrimSuffix(formatted, []byte{'\n'})))
	f.totalProcessed.Add(1)
	return nil
}

// Close drains and shuts down the file writer.
func (f *FileTransport) Close() error {
	if err := f.writer.Shutdown(2 * time.Second); err != nil {
		return fmt.Errorf("failed to shut down file writer: %w", err)
	}
	return nil
}

// Stats returns file counters.
func (f *FileTransport) Stats() map[string]any {
	return map[string]any{
		"type":            "file",
		"directory":       f.opts.Directory,
		"file_name":       f.opts.FileName,
		"total_processed": f.totalProcessed.Load(),
	}
}
