// Package xbee is a driver for Digi XBee radio modules (LoRaWAN and
// Cellular LTE/NB-IoT) speaking Digi's binary API-frame protocol over a
// serial link.
//
// All physical I/O goes through the HostPort capability set, so the driver
// runs anywhere a byte stream, a millisecond clock and a delay are
// available. SerialPort provides a ready-made HostPort for real serial
// devices.
//
// The driver is single-threaded and cooperative: it spawns no goroutines,
// and blocking operations enforce their timeouts against the host clock. A
// device (its frame-ID counter and its UART) is not safe for concurrent
// use; callers needing concurrency must serialize externally.
package xbee
