package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/mputra/treasury-management/internal/core/events"
)

func TestEvents(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Events Module Suite")
}

var _ = ginkgo.Describe("EventBus", func() {
	var bus *events.EventBus

	ginkgo.BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(lg)
	})

	ginkgo.Describe("PublishSync", func() {
		ginkgo.It("should deliver inline before returning", func() {
			var received []string
			bus.Subscribe(events.EventTypeKasRecorded, func(ctx context.Context, e events.Event) error {
				received = append(received, e.EventID())
				return nil
			})
			bus.Subscribe(events.EventTypeKasRecorded, func(ctx context.Context, e events.Event) error {
				received = append(received, e.EventID())
				return nil
			})

			event := events.NewLedgerEntryRecorded(events.EventTypeKasRecorded, 1, 5000, time.Now())
			err := bus.PublishSync(context.Background(), event)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(received).To(gomega.HaveLen(2))
			gomega.Expect(received[0]).To(gomega.Equal(event.EventID()))
		})

		ginkgo.It("should stop at the first failing handler and report it", func() {
			var secondRan bool
			bus.Subscribe(events.EventTypeIncomeRecorded, func(ctx context.Context, e events.Event) error {
				return errors.New("watcher unavailable")
			})
			bus.Subscribe(events.EventTypeIncomeRecorded, func(ctx context.Context, e events.Event) error {
				secondRan = true
				return nil
			})

			event := events.NewLedgerEntryRecorded(events.EventTypeIncomeRecorded, 2, 1000, time.Now())
			err := bus.PublishSync(context.Background(), event)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(secondRan).To(gomega.BeFalse())
		})

		ginkgo.It("should accept an event nobody subscribed to", func() {
			event := events.NewLedgerEntryRecorded(events.EventTypeExpenseRecorded, 3, 700, time.Now())
			gomega.Expect(bus.PublishSync(context.Background(), event)).To(gomega.Succeed())
		})
	})

	ginkgo.Describe("Publish", func() {
		ginkgo.It("should never surface handler failures to the publisher", func() {
			done := make(chan struct{})
			bus.Subscribe(events.EventTypeExpenseRecorded, func(ctx context.Context, e events.Event) error {
				close(done)
				return errors.New("watcher unavailable")
			})

			event := events.NewLedgerEntryRecorded(events.EventTypeExpenseRecorded, 4, 700, time.Now())
			err := bus.Publish(context.Background(), event)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Eventually(done).Should(gomega.BeClosed())
		})
	})
})
