package main

import (
	"fmt"
	"log/slog"
	"os"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/tokenforge/image-pool-go/cmd/cli/tui"
	"github.com/tokenforge/image-pool-go/internal/actor"
	"github.com/tokenforge/image-pool-go/internal/recovery"
	"github.com/tokenforge/image-pool-go/internal/types"
	"github.com/tokenforge/image-pool-go/internal/utils"
	"github.com/tokenforge/image-pool-go/internal/wal"
	walformatter "github.com/tokenforge/image-pool-go/internal/wal/formatter"
	walstorage "github.com/tokenforge/image-pool-go/internal/wal/storage"
)

func main() {
	imagesDir := "./samples/images"
	tmpDir := "./tmp"
	if len(os.Args) > 1 {
		imagesDir = os.Args[1]
	}

	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		fmt.Println("Error creating working dir:", err)
		os.Exit(1)
	}

	logChan := make(chan string, 100)
	appUtils := utils.NewDefaultUtils(tmpDir, tmpDir, slog.LevelInfo, &tui.ChannelWriter{Ch: logChan})

	walFormatter := walformatter.NewJSONFormatter()
	snapshotPath := appUtils.GenSnapshotPath()
	pool, lastRequestID, lastWalPath, err := recovery.RecoverPool(*snapshotPath, imagesDir, walFormatter, appUtils)
	if err != nil {
		fmt.Println("Recovery failed:", err)
		os.Exit(1)
	}

	var seqNo uint64
	if lastWalPath == "" {
		lastWalPath, seqNo, err = appUtils.GenNextWALPath()
		if err != nil {
			fmt.Println("Error generating new WAL path:", err)
			os.Exit(1)
		}
	}

	fileStorage, err := walstorage.NewFileStorage(lastWalPath, seqNo, walstorage.FileStorageOpt{})
	if err != nil {
		fmt.Println("Error creating file storage:", err)
		os.Exit(1)
	}
	// The storage recovers its sequence number from the file header when
	// reopening an existing WAL, so it is the authority here.
	w, err := wal.NewWAL(lastWalPath, fileStorage.SeqNo(), walFormatter, fileStorage)
	if err != nil {
		fmt.Println("Error opening WAL:", err)
		os.Exit(1)
	}

	ctx := &types.Context{
		WAL:   w,
		Utils: appUtils,
	}

	sys, err := actor.NewSystem(ctx, pool, &actor.SystemOptional{
		FlushAfterNPick: 5,
		LastRequestID:   lastRequestID,
	})
	if err != nil {
		fmt.Println("System startup error:", err)
		os.Exit(1)
	}
	defer sys.Stop()

	p := bubbletea.NewProgram(tui.NewModel(sys, imagesDir, logChan))
	if _, err := p.Run(); err != nil {
		fmt.Println("TUI error:", err)
		os.Exit(1)
	}
}
