package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tokenforge/image-pool-go/internal/actor"
	"github.com/tokenforge/image-pool-go/internal/config"
	"github.com/tokenforge/image-pool-go/internal/recovery"
	"github.com/tokenforge/image-pool-go/internal/scanner"
	"github.com/tokenforge/image-pool-go/internal/types"
	"github.com/tokenforge/image-pool-go/internal/utils"
	"github.com/tokenforge/image-pool-go/internal/wal"
	walformatter "github.com/tokenforge/image-pool-go/internal/wal/formatter"
	walstorage "github.com/tokenforge/image-pool-go/internal/wal/storage"
	"github.com/tokenforge/image-pool-go/internal/walstream"
)

func main() {
	baseDir := "."
	configPath := baseDir + "/samples/config.yaml"

	imagesDir := baseDir + "/samples/images"
	tmpDir := baseDir + "/tmp"
	walFileSize := int(math.Round(1024 * 0.2)) // 0.2 Kb
	formatterName := "stringline"

	cfgLoader := &config.ConfigImpl{}
	if cfg, err := cfgLoader.LoadYAML(configPath); err == nil {
		if cfg.ImagesDir != "" {
			imagesDir = cfg.ImagesDir
		}
		if cfg.WorkingDir != "" {
			tmpDir = cfg.WorkingDir
		}
		if cfg.WAL.MaxFileSize > 0 {
			walFileSize = cfg.WAL.MaxFileSize
		}
		if cfg.WAL.Formatter != "" {
			formatterName = cfg.WAL.Formatter
		}
	} else {
		fmt.Println("No config loaded, using defaults:", err)
	}

	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		fmt.Println("Error creating working dir:", err)
		os.Exit(1)
	}

	appUtils := utils.NewDefaultUtils(tmpDir, tmpDir, slog.LevelDebug, nil)

	var walFormatter types.LogFormatter
	if formatterName == "json" {
		walFormatter = walformatter.NewJSONFormatter()
	} else {
		walFormatter = walformatter.NewStringLineFormatter()
	}
	snapshotPath := appUtils.GenSnapshotPath()
	pool, lastRequestID, lastWalPath, err := recovery.RecoverPool(*snapshotPath, imagesDir, walFormatter, appUtils)
	if err != nil {
		fmt.Println("Recovery failed:", err)
		os.Exit(1)
	}

	var w types.WAL
	var seqNo uint64
	if lastWalPath == "" {
		var newWalPath string
		newWalPath, seqNo, err = appUtils.GenNextWALPath()
		if err != nil {
			fmt.Println("Error generating new WAL path:", err)
			os.Exit(1)
		}
		lastWalPath = newWalPath
	}

	// fileStorage, err := walstorage.NewFileMMapStorage(lastWalPath, walstorage.FileMMapStorageOps{
	// 	MMapFileSizeInBytes: 1024 * 0.5, // 0.5 Kb
	// })
	fileStorage, err := walstorage.NewFileStorage(lastWalPath, seqNo, walstorage.FileStorageOpt{
		SizeFileInBytes: walFileSize,
	})
	if err != nil {
		fmt.Println("Error creating file storage:", err)
		os.Exit(1)
	}
	// The storage recovers its sequence number from the file header when
	// reopening an existing WAL, so it is the authority here.
	w, err = wal.NewWAL(lastWalPath, fileStorage.SeqNo(), walFormatter, fileStorage)
	if err != nil {
		fmt.Println("Error opening WAL:", err)
		os.Exit(1)
	}

	ctx := &types.Context{
		WAL:   w,
		Utils: appUtils,
	}

	// Check for --stream-wal flag
	streamWAL := false
	for _, arg := range os.Args {
		if arg == "--stream-wal" {
			streamWAL = true
			break
		}
	}

	var walStreamer walstream.WALStreamer
	if streamWAL {
		fmt.Println("WAL streaming is enabled.")
		walStreamer = walstream.NewLogStreamer(appUtils.GetLogger())
	} else {
		walStreamer = walstream.NewNoOpStreamer()
	}

	sys, err := actor.NewSystem(ctx, pool, &actor.SystemOptional{
		FlushAfterNPick: 5,
		LastRequestID:   lastRequestID,
		WALStreamer:     walStreamer,
	})
	if err != nil {
		fmt.Println("System startup error:", err)
		return
	}
	sys.SetRequestID(lastRequestID)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("CLI Controls:")
	fmt.Println("  - Press '1' to rescan the images directory.")
	fmt.Println("  - Press '2' to print the pool state.")
	fmt.Println("  - Press Ctrl+C or send SIGTERM to exit.")
	fmt.Println("-------------------------------------------------")
	fmt.Println("[Pool state] ", pool.State())

	pickLock := make(chan struct{}, 1) // Used to lock pick requests
	pickLock <- struct{}{}

	go func() {
		for {
			<-pickLock
			resp := <-sys.Pick()
			if resp.Err == nil {
				fmt.Printf("[Request %d] Picked %s\n", resp.RequestID, resp.FileID)
			} else {
				fmt.Printf("[Request %d] Pick failed: %s \n", resp.RequestID, resp.Err)
			}
			pickLock <- struct{}{}
			time.Sleep(1 * time.Second)
		}
	}()

	// Goroutine to handle user input
	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			char, _, err := reader.ReadRune()
			if err != nil {
				fmt.Println("Error reading input:", err)
				return
			}

			switch char {
			case '1':
				fmt.Println("\n--- Rescanning images directory... ---")
				images, err := scanner.ScanDir(imagesDir)
				if err != nil {
					fmt.Printf("Scan failed: %v\n", err)
					break
				}
				resp := sys.Rescan(images)
				if resp.Err != nil {
					fmt.Printf("Rescan failed: %v\n", resp.Err)
				} else {
					fmt.Printf("--- Rescan done. Added: %v Removed: %v ---\n", resp.Added, resp.Removed)
				}

			case '2':
				fmt.Println("\n--- Pool state ---")
				for _, item := range sys.State() {
					fmt.Printf("  %-40s used=%v\n", item.FileID, item.Used)
				}
				fmt.Println("------------------")
			}
		}
	}()

	<-sigChan
	fmt.Println("Shutting down gracefully...")
	<-pickLock

	sys.Stop()

	fmt.Println("[Pool state] ", pool.State())
	fmt.Println("Shutdown complete.")
}
