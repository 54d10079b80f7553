// Copyright © 2025 The Gomon Project.

/*
Package record persists a monitoring run into an output directory:
  - process_metrics.csv, the time series, one row per sample
  - summary.yaml, the run's process, outcome and aggregates
  - process_metrics.prom, the run's metrics in Prometheus text exposition format,
    for a node_exporter textfile collector

Files are overwritten by each run.
*/
package record
