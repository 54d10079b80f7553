// Copyright © 2025 The Gomon Project.

/*
Package sampler polls the CPU utilization and resident memory of one process at a
fixed interval for a fixed duration, recording a TimeSeries of Samples.

A run begins with a priming CPU read that is discarded, since utilization is
measured as a delta against the previous read. A run ends when the deadline is
reached (Completed), when the process can no longer be read (Aborted), or when
its context is cancelled (Interrupted). Every outcome keeps the samples recorded
so far.
*/
package sampler
