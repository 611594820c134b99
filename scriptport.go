package xbee

import "slices"

// ScriptPort is a test helper implementing HostPort over scripted bytes.
// Reads drain the queued RX bytes; an empty queue costs one virtual read
// timeout, so deadline-bounded loops terminate without real sleeping. The
// clock is virtual: Delay advances it, and so does an empty read.
type ScriptPort struct {
	rx     []byte
	writes [][]byte
	now    uint32

	// WriteErr, when set, is returned by every Write.
	WriteErr error

	// ReadErr, when set, is returned once by the next Read and cleared.
	ReadErr error

	// InitErr, when set, is returned by Init.
	InitErr error

	// Flushed counts FlushRx calls.
	Flushed int

	initBaud   uint32
	initDevice string
}

// NewScriptPort creates an empty script port.
func NewScriptPort() *ScriptPort {
	return &ScriptPort{}
}

// Feed queues bytes for subsequent reads, simulating data arriving from
// the module.
func (p *ScriptPort) Feed(data ...byte) {
	p.rx = append(p.rx, data...)
}

// Writes returns every buffer passed to Write, in order.
func (p *ScriptPort) Writes() [][]byte {
	return p.writes
}

// LastWrite returns the most recent buffer passed to Write, or nil.
func (p *ScriptPort) LastWrite() []byte {
	if len(p.writes) == 0 {
		return nil
	}
	return p.writes[len(p.writes)-1]
}

func (p *ScriptPort) Init(baud uint32, device string) error {
	if p.InitErr != nil {
		return p.InitErr
	}
	p.initBaud = baud
	p.initDevice = device
	return nil
}

func (p *ScriptPort) Read(buf []byte) (int, error) {
	if p.ReadErr != nil {
		err := p.ReadErr
		p.ReadErr = nil
		return 0, err
	}
	if len(p.rx) == 0 {
		// An empty queue behaves like a real port timing out: the call
		// consumes its read budget and returns nothing.
		p.now += uint32(UARTReadTimeout.Milliseconds())
		return 0, ErrReadTimeout
	}
	n := copy(buf, p.rx)
	p.rx = p.rx[n:]
	return n, nil
}

func (p *ScriptPort) Write(b []byte) error {
	if p.WriteErr != nil {
		return p.WriteErr
	}
	p.writes = append(p.writes, slices.Clone(b))
	return nil
}

func (p *ScriptPort) Millis() uint32 {
	return p.now
}

func (p *ScriptPort) Delay(ms uint32) {
	p.now += ms
}

func (p *ScriptPort) FlushRx() {
	p.rx = nil
	p.Flushed++
}
