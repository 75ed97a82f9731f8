package pipeline

import (
	"context"
	"testing"
	"time"

	nmea "github.com/aldas/adcp-ingest"
	"github.com/aldas/adcp-ingest/binarydetector"
	"github.com/aldas/adcp-ingest/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupervisor_StartStop(t *testing.T) {
	queue := NewQueue(10)
	dev := &fakeLineReader{lines: [][]byte{[]byte("$PNORI,4,X,4,20,0.20,1.00,0*2C\r\n")}}
	open := func() (nmea.LineReader, error) { return dev, nil }
	producer := NewProducer(open, queue, ProducerConfig{})

	store := &fakeStore{}
	exporter := &fakeExporter{}
	router := parser.NewRouter(parser.Options{})
	consumer := NewConsumer(queue, router, store, exporter, binarydetector.Config{}, ConsumerConfig{
		PopTimeout: 10 * time.Millisecond, DrainTimeout: 50 * time.Millisecond,
	})

	sup := NewSupervisor(producer, consumer, queue)
	sup.Start(context.Background())

	require.Eventually(t, func() bool {
		return sup.Health().ConsumerHeartbeat > 0
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := sup.Stop(ctx)
	assert.NoError(t, err)
	assert.True(t, store.closed)
}

func TestSupervisor_StartTwicePanics(t *testing.T) {
	queue := NewQueue(10)
	dev := &fakeLineReader{}
	open := func() (nmea.LineReader, error) { return dev, nil }
	producer := NewProducer(open, queue, ProducerConfig{})
	store := &fakeStore{}
	exporter := &fakeExporter{}
	router := parser.NewRouter(parser.Options{})
	consumer := NewConsumer(queue, router, store, exporter, binarydetector.Config{}, ConsumerConfig{})

	sup := NewSupervisor(producer, consumer, queue)
	sup.Start(context.Background())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = sup.Stop(ctx)
	}()

	assert.Panics(t, func() {
		sup.Start(context.Background())
	})
}
