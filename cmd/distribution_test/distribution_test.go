package distributiontest

import (
	"fmt"
	"testing"

	"github.com/tokenforge/image-pool-go/internal/imagepool"
	"github.com/tokenforge/image-pool-go/internal/processing"
	"github.com/tokenforge/image-pool-go/internal/selector"
	"github.com/tokenforge/image-pool-go/internal/types"
	"github.com/tokenforge/image-pool-go/internal/utils"
)

func TestPickDistributionReport(t *testing.T) {
	selectors := []struct {
		name     string
		selector types.UsedSetSelector
	}{
		{"FenwickTreeSelector", selector.NewFenwickTreeSelector()},
		{"BitmapSelector", selector.NewBitmapSelector()},
	}

	const catalogSize = 10
	const totalPicks = 100000 // a whole number of full cycles

	for _, s := range selectors {
		t.Run(s.name, func(t *testing.T) {
			images := make([]types.PoolImage, 0, catalogSize)
			for i := 0; i < catalogSize; i++ {
				images = append(images, types.PoolImage{FileID: fmt.Sprintf("cats/cat_%02d.png", i)})
			}

			ctx := &types.Context{Utils: &utils.MockUtils{}}
			pool := imagepool.NewPool(
				images,
				imagepool.PoolOptional{
					Selector: s.selector,
				},
			)
			w := &selectorTestmockWAL{}
			ctx.WAL = w

			opt := &processing.ProcessorOptional{RequestBufferSize: 1000, FlushAfterNPick: 1000}
			p := processing.NewProcessor(ctx, pool, opt)

			counts := make(map[string]int)
			for i := 0; i < totalPicks; i++ {
				resp := <-p.Pick()
				if resp.Err == nil {
					counts[resp.FileID]++
				}
			}
			p.Stop()

			fmt.Printf("\n--- Distribution Report for %s ---\n", s.name)
			fmt.Println("|   FileID          |   Count   |")
			fmt.Println("|-------------------|-----------|")
			for _, img := range images {
				fmt.Printf("| %-17s | %9d |\n", img.FileID, counts[img.FileID])
			}
			fmt.Println("-------------------------------------------------")

			// Every full cycle dispenses each file exactly once, so over a
			// whole number of cycles the counts are exactly equal.
			expected := totalPicks / catalogSize
			for _, img := range images {
				if counts[img.FileID] != expected {
					t.Errorf("Expected %s to be picked %d times, but got %d", img.FileID, expected, counts[img.FileID])
				}
			}
		})
	}
}

func TestNoRepeatWithinCycle(t *testing.T) {
	selectors := []struct {
		name     string
		selector types.UsedSetSelector
	}{
		{"FenwickTreeSelector", selector.NewFenwickTreeSelector()},
		{"BitmapSelector", selector.NewBitmapSelector()},
	}

	const catalogSize = 50

	for _, s := range selectors {
		t.Run(s.name, func(t *testing.T) {
			images := make([]types.PoolImage, 0, catalogSize)
			for i := 0; i < catalogSize; i++ {
				images = append(images, types.PoolImage{FileID: fmt.Sprintf("cats/cat_%02d.png", i)})
			}

			ctx := &types.Context{Utils: &utils.MockUtils{}}
			pool := imagepool.NewPool(
				images,
				imagepool.PoolOptional{
					Selector: s.selector,
				},
			)
			w := &selectorTestmockWAL{}
			ctx.WAL = w

			opt := &processing.ProcessorOptional{RequestBufferSize: 100, FlushAfterNPick: 10}
			p := processing.NewProcessor(ctx, pool, opt)

			// A single full cycle must dispense every file exactly once.
			seen := make(map[string]int)
			for i := 0; i < catalogSize; i++ {
				resp := <-p.Pick()
				if resp.Err != nil {
					t.Fatalf("Pick %d failed: %v", i, resp.Err)
				}
				seen[resp.FileID]++
			}

			for _, img := range images {
				if seen[img.FileID] != 1 {
					t.Errorf("Expected %s to be dispensed exactly once per cycle, but got %d", img.FileID, seen[img.FileID])
				}
			}

			// The next cycle starts from a fresh used set.
			seenSecond := make(map[string]int)
			for i := 0; i < catalogSize; i++ {
				resp := <-p.Pick()
				if resp.Err != nil {
					t.Fatalf("Pick %d failed: %v", i, resp.Err)
				}
				seenSecond[resp.FileID]++
			}
			p.Stop()

			for _, img := range images {
				if seenSecond[img.FileID] != 1 {
					t.Errorf("Expected %s to be dispensed exactly once in second cycle, but got %d", img.FileID, seenSecond[img.FileID])
				}
			}
		})
	}
}

type selectorTestmockWAL struct {
}

func (m *selectorTestmockWAL) LogPick(item types.WalLogPickItem) error         { return nil }
func (m *selectorTestmockWAL) LogRescan(item types.WalLogRescanItem) error     { return nil }
func (m *selectorTestmockWAL) LogSnapshot(item types.WalLogSnapshotItem) error { return nil }
func (m *selectorTestmockWAL) Flush() error                                    { return nil }
func (m *selectorTestmockWAL) Reset()                                          {}
func (m *selectorTestmockWAL) Size() (int64, error)                            { return 0, nil }
func (m *selectorTestmockWAL) Close() error                                    { return nil }
func (m *selectorTestmockWAL) Rotate(path string) error                        { return nil }
