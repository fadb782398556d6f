package types

import "log/slog"

// LogType defines the type of a WAL log entry.
type LogType byte

const (
	LogTypePick LogType = iota + 1
	LogTypeRescan
	LogTypeSnapshot
	LogTypeRotate
)

// LogError defines the type of a WAL log error.
type LogError byte

const (
	ErrorNone LogError = iota
	ErrorPoolEmpty
	ErrorFileNotFound
)

// WAL file constants.
const (
	WALMagic    uint32 = 0x494D5057 // "IMPW"
	WALVersion1 uint16 = 1

	WALStatusOpen   uint16 = 0
	WALStatusClosed uint16 = 1

	// WALHeaderSize is the fixed byte length of the binary WALHeader.
	WALHeaderSize = 24

	WALBaseName = "imagepool_wal"
)

// WALHeader is the fixed-size binary header at the start of every WAL file.
type WALHeader struct {
	Magic      uint32
	Version    uint16
	Status     uint16
	SeqNo      uint64
	DataLength uint64
}

// PoolImage represents a single qualifying image file in the pool.
type PoolImage struct {
	FileID string `json:"file_id"`
}

// PoolImageState is the externally visible state of one pool member.
type PoolImageState struct {
	FileID string `json:"file_id"`
	Used   bool   `json:"used"`
}

// ConfigPool represents a fixture image list loaded from a config file.
type ConfigPool struct {
	Images []PoolImage `json:"images"`
}

// PoolSnapshot captures the full pool state at a point in time.
type PoolSnapshot struct {
	Catalog       []PoolImage `json:"catalog"`
	Used          []string    `json:"used"`
	LastRequestID uint64      `json:"last_request_id"`
}

// WalLogEntry is the common interface for all WAL log entry kinds.
type WalLogEntry interface {
	GetType() LogType
}

// WalLogEntryBase carries the fields shared by every WAL log entry.
type WalLogEntryBase struct {
	Type  LogType  `json:"type"`
	Error LogError `json:"error,omitempty"`
}

func (b WalLogEntryBase) GetType() LogType { return b.Type }

// WalLogPickItem records one pick operation.
type WalLogPickItem struct {
	WalLogEntryBase
	RequestID uint64 `json:"request_id"`
	FileID    string `json:"file_id,omitempty"`
	Success   bool   `json:"success"`
}

// WalLogRescanItem records a directory rescan diff applied to the pool.
type WalLogRescanItem struct {
	WalLogEntryBase
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// WalLogSnapshotItem records that a snapshot was written to Path.
type WalLogSnapshotItem struct {
	WalLogEntryBase
	Path string `json:"path"`
}

// WalLogRotateItem records a WAL file rotation.
type WalLogRotateItem struct {
	WalLogEntryBase
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

// ImagePool interface
type ImagePool interface {
	// SelectImage picks one unused image, stages it, and resets the used
	// set when it saturates the catalog.
	SelectImage(ctx *Context) (string, error)
	CommitPick()
	RevertPick()

	// Rescan diffs the given directory listing against the catalog and
	// applies it. Returns the added and removed file IDs for logging.
	Rescan(images []PoolImage) (added, removed []string)

	// Replay hooks. Must be deterministic.
	ApplyPickLog(fileID string)
	ApplyRescanLog(added, removed []string)

	State() []PoolImageState
	UsedCount() int
	IsUsed(fileID string) bool

	CreateSnapshot() (*PoolSnapshot, error)
	LoadSnapshot(snap *PoolSnapshot) error
}

// WAL interface with buffered logging
type WAL interface {
	// LogPick appends a log entry to the buffer (does not write to disk immediately)
	LogPick(item WalLogPickItem) error
	LogRescan(item WalLogRescanItem) error
	LogSnapshot(item WalLogSnapshotItem) error
	// Flush writes all buffered log entries to disk
	Flush() error
	// Reset discards any buffered, unflushed entries
	Reset()
	// Size returns the payload size of the active WAL file
	Size() (int64, error)
	// Close closes the WAL file
	Close() error
	// Rotate moves logging to a new file at path
	Rotate(path string) error
}

// Storage is the byte-level backend of a WAL file.
type Storage interface {
	Write(data []byte) error
	CanWrite(size int) bool
	Flush() error
	Size() (int64, error)
	Close() error
	Rotate(newPath string) error
}

// LogFormatter encodes and decodes WAL log entries.
type LogFormatter interface {
	Encode(items []WalLogEntry) ([]byte, error)
	Decode(data []byte) ([]WalLogEntry, error)
}

// Utils interface for logging and path generation.
type Utils interface {
	GetLogger() *slog.Logger
	GenSnapshotPath() *string
	GenRotatedWALPath() *string
	GetWALFiles() ([]string, error)
	GenNextWALPath() (string, uint64, error)
}

// Context for dependency injection
type Context struct {
	WAL   WAL
	Utils Utils
}

// UsedSetSelector defines the contract for picking an unused image from the
// pool. It abstracts the underlying data structure used for efficient
// uniform selection among the currently unused members.
type UsedSetSelector interface {
	// Select chooses one unused image uniformly at random and returns its ID.
	Select(ctx *Context) (string, error)

	// MarkUsed removes the image from the unused set.
	MarkUsed(fileID string)

	// MarkUnused returns the image to the unused set.
	MarkUnused(fileID string)

	// ResetAll re-initializes the selector with a new catalog, all unused.
	ResetAll(catalog []PoolImage)

	// TotalUnused returns the count of images currently available for selection.
	TotalUnused() int64

	// IsUsed reports whether the image has been dispensed since the last reset.
	IsUsed(fileID string) bool

	// UsedIDs returns the dispensed file IDs in catalog order.
	UsedIDs() []string
}

// Error
type errString string

func (e errString) Error() string {
	return string(e)
}

const ErrEmptyImagePool = errString("image pool has no qualifying files")
const ErrFileNotFound = errString("file not found in image pool")
const ErrWALFull = errString("wal storage is full")
const ErrWalBufferNotEmpty = errString("Wal buffer is not empty. Should Flush before rotate")
const ErrShutingDown = errString("request cancelled: processor shutting down")
const ErrInvalidLookupResult = errString("unexpected lookup result type")
