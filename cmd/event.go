package cmd

import (
	"context"
	"time"

	"github.com/mputra/treasury-management/internal/core/events"
	"github.com/mputra/treasury-management/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus commands",
	Long:  `Inspect the in-process event bus by publishing test ledger events`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test ledger event",
	Long:  `Publish a test event (kas.recorded, income.recorded, expense.recorded) and log its delivery`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var eventAmount int64

func publishTestEvent(eventType string) {
	lg := logger.LoggerWrapper()

	eventBus := events.NewEventBus(lg)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	testEvent := events.NewLedgerEntryRecorded(eventType, 0, eventAmount, time.Now())

	lg.Info("publishing test event", "event_type", eventType, "event_id", testEvent.EventID())

	if err := eventBus.PublishSync(context.Background(), testEvent); err != nil {
		lg.Error("failed to publish event", "error", err)
		return
	}

	lg.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().Int64Var(&eventAmount, "amount", 5000, "amount carried by the test event")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
