// Command cleanup is the manual backup for the opportunistic sweep: it
// deletes messages older than the retention window across all rooms and
// prints database statistics.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jloyd-c/bubble-chat/config"
	"github.com/jloyd-c/bubble-chat/internal/pg"
	"github.com/jloyd-c/bubble-chat/internal/postgres"
	"github.com/jloyd-c/bubble-chat/internal/service"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// past this many stored messages the sweep alone is not keeping up
const warnTotal = 500

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, pg.Config{
		DSN:             cfg.Postgres.DSN,
		ApplicationName: "bubble-chat-cleanup",
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	retention := service.NewRetentionService(postgres.NewMessageRepository(pool))

	cutoff := retention.Cutoff()
	stats, err := retention.Stats(ctx, cutoff)
	if err != nil {
		log.Fatalf("stats: %v", err)
	}

	deleted, err := retention.SweepBefore(ctx, cutoff)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}

	fmt.Println("Database statistics:")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Count"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.Append([]string{"Total messages", strconv.FormatInt(stats.Total, 10)})
	table.Append([]string{fmt.Sprintf("Older than %s", service.RetentionWindow), strconv.FormatInt(stats.Old, 10)})
	table.Append([]string{"Recent messages", strconv.FormatInt(stats.Recent, 10)})
	table.Append([]string{"Deleted", strconv.FormatInt(deleted, 10)})
	table.Render()

	if deleted > 0 {
		color.Success.Printf("Deleted %d old messages.\n", deleted)
	} else {
		color.Success.Println("No old messages to delete.")
	}

	if stats.Total > warnTotal {
		color.Warn.Printf("Database has more than %d messages!\n", warnTotal)
		color.Warn.Println("Consider having users visit more often")
	}
}
