// Package kafka publishes completed weather analyses to a Kafka topic so
// downstream consumers (dashboards, alerting) can react without calling the
// API themselves.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/weather-probability-service/internal/config"
	"github.com/couchcryptid/weather-probability-service/internal/domain"
)

// Writer produces analysis reports to a Kafka topic.
// It implements service.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers()...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishAnalysis serializes and publishes one analysis result. Messages for
// the same coordinate share a key so a consumer sees them in order.
func (w *Writer) PublishAnalysis(ctx context.Context, latitude, longitude float64, date string, result domain.AnalysisResult) error {
	msg, err := serializeToMessage(latitude, longitude, date, result)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write analysis message: %w", err)
	}
	w.logger.Debug("published analysis report", "date", date, "lat", latitude, "lon", longitude)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an analysis result into a Kafka message keyed
// by coordinate, with the analyzed date and overall risk as headers.
func serializeToMessage(latitude, longitude float64, date string, result domain.AnalysisResult) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize analysis result: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(fmt.Sprintf("%.4f,%.4f", latitude, longitude)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "date_analyzed", Value: []byte(date)},
			{Key: "overall_risk", Value: []byte(result.RiskAssessment.OverallRisk)},
		},
	}, nil
}
