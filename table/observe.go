package table

import (
	"context"
	"fmt"
	"time"

	"github.com/hatlonely/tablex/log/logger"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tableMetrics 同名的表共用一组指标
type tableMetrics struct {
	operationCounter  *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	rows              *prometheus.GaugeVec
}

func newTableMetrics(name string) *tableMetrics {
	return &tableMetrics{
		operationCounter: register(prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: name + "_operations_total",
				Help: "Total number of table operations",
			},
			[]string{"operation", "status"},
		)),
		operationDuration: register(prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name + "_operation_duration_seconds",
				Help:    "Duration of table operations including the pipeline rerun",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"operation"},
		)),
		rows: register(prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: name + "_rows",
				Help: "Number of rows at each pipeline stage",
			},
			[]string{"stage"},
		)),
	}
}

// register 注册到默认 registry，已经注册过时复用已有的收集器
// 其他注册错误（比如名字非法）时返回未注册的收集器，指标照常计数但不会被导出
func register[C prometheus.Collector](c C) C {
	err := prometheus.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	return c
}

// observer 为 Context 的每次操作记录指标、追踪和日志
type observer struct {
	name    string
	id      string
	logger  logger.Logger
	metrics *tableMetrics
	tracer  trace.Tracer
}

func newObserver(options *Options, id string, l logger.Logger) *observer {
	obs := &observer{
		name:   options.Name,
		id:     id,
		logger: l,
	}
	if options.EnableMetrics {
		obs.metrics = newTableMetrics(options.Name)
	}
	if options.EnableTracing {
		obs.tracer = otel.Tracer(fmt.Sprintf("table.%s", options.Name))
	}
	return obs
}

// observe 执行 fn 并记录一次操作
func (obs *observer) observe(operation string, fn func() error) error {
	start := time.Now()

	var span trace.Span
	if obs.tracer != nil {
		_, span = obs.tracer.Start(context.Background(), fmt.Sprintf("table.%s", operation),
			trace.WithAttributes(
				attribute.String("component", obs.name),
				attribute.String("table", obs.id),
				attribute.String("operation", operation),
			),
		)
		defer span.End()
	}

	err := fn()
	duration := time.Since(start)

	if span != nil {
		span.SetAttributes(attribute.Int64("duration_us", duration.Microseconds()))
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}

	if obs.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		obs.metrics.operationCounter.WithLabelValues(operation, status).Inc()
		obs.metrics.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	}

	if err != nil {
		obs.logger.Warn("table operation failed",
			"operation", operation,
			"duration_us", duration.Microseconds(),
			"error", err.Error(),
		)
	} else {
		obs.logger.Debug("table operation completed",
			"operation", operation,
			"duration_us", duration.Microseconds(),
		)
	}

	return err
}

func (obs *observer) observeRows(input, filtered, page int) {
	if obs.metrics == nil {
		return
	}
	obs.metrics.rows.WithLabelValues("input").Set(float64(input))
	obs.metrics.rows.WithLabelValues("filtered").Set(float64(filtered))
	obs.metrics.rows.WithLabelValues("page").Set(float64(page))
}
