// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package metrics exposes the statistics of a robdd session as Prometheus
// gauges, mainly to be written in the textfile format read by the node
// exporter.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dalzilio/robdd"
)

const namespace = "robdd"

// StatsProvider is implemented by *robdd.Session.
type StatsProvider interface {
	Stats() robdd.Stats
}

type gauge struct {
	desc  *prometheus.Desc
	value func(robdd.Stats) int
}

func newgauge(name, help string, value func(robdd.Stats) int) gauge {
	return gauge{
		desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil),
		value: value,
	}
}

// Collector reads the statistics of a session each time it is collected.
type Collector struct {
	src    StatsProvider
	gauges []gauge
}

// NewCollector returns a collector for the statistics of src.
func NewCollector(src StatsProvider) *Collector {
	return &Collector{
		src: src,
		gauges: []gauge{
			newgauge("nodes_allocated", "Capacity of the node table.", func(s robdd.Stats) int { return s.Allocated }),
			newgauge("nodes_used", "Nodes in the table, constants included.", func(s robdd.Stats) int { return s.Used }),
			newgauge("nodes_produced", "Total number of nodes ever produced.", func(s robdd.Stats) int { return s.Produced }),
			newgauge("variables", "Number of declared variables.", func(s robdd.Stats) int { return s.Varnum }),
			newgauge("unique_access_total", "Accesses to the unique table.", func(s robdd.Stats) int { return s.UniqueAccess }),
			newgauge("unique_hit_total", "Nodes found in the unique table.", func(s robdd.Stats) int { return s.UniqueHit }),
			newgauge("unique_miss_total", "Nodes not found in the unique table.", func(s robdd.Stats) int { return s.UniqueMiss }),
			newgauge("ite_calls_total", "Top-level calls to Ite.", func(s robdd.Stats) int { return s.IteCalls }),
			newgauge("ite_cache_hit_total", "Entries found in the Ite memo tables.", func(s robdd.Stats) int { return s.OpHit }),
			newgauge("ite_cache_miss_total", "Entries not found in the Ite memo tables.", func(s robdd.Stats) int { return s.OpMiss }),
			newgauge("resizes_total", "Resizes of the node table.", func(s robdd.Stats) int { return s.Resizes }),
		},
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, g := range c.gauges {
		ch <- g.desc
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	for _, g := range c.gauges {
		ch <- prometheus.MustNewConstMetric(g.desc, prometheus.GaugeValue, float64(g.value(s)))
	}
}

// Registry returns a fresh registry holding only a collector for src.
func Registry(src StatsProvider) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(src)); err != nil {
		return nil, err
	}
	return reg, nil
}

// WriteTextfile writes the statistics of src to filename. The file is written
// atomically, through a temporary file renamed at the end.
func WriteTextfile(filename string, src StatsProvider) error {
	reg, err := Registry(src)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(filename, reg); err != nil {
		return fmt.Errorf("metrics textfile: %w: %w", robdd.ErrIOFailure, err)
	}
	return nil
}
