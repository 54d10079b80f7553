// Copyright © 2025 The Gomon Project.

/*
Package listener resolves a TCP port to the processes listening on it.

Find scans the whole process table. Processes that exit during the scan, or whose
descriptors the caller may not inspect, are skipped. Select applies the selection
policy: no listener is fatal, several listeners is a warning and the first is used.
The candidates are ordered by pid, but which of several processes sharing a port
is "first" carries no meaning beyond that.
*/
package listener
