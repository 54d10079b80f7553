// Copyright © 2021-2025 The Gomon Project.

/*
Package process provides access to the system process table for the "portmon" command:
  - enumeration of the processes visible to the caller
  - the inet endpoints each process holds
  - per process CPU utilization and resident memory

Two Lister implementations are available, one over gopsutil for all platforms
and one reading /proc directly on Linux.
*/
package process
