package export

import (
	"bytes"
	"io"

	"github.com/noborus/ov/oviewer"
)

// Pager shows a rendered document full screen until the user quits it.
// It satisfies tea.ExecCommand so the UI can hand the terminal over to it.
type Pager struct {
	content []byte
}

// NewPager creates a pager for content
func NewPager(content []byte) *Pager {
	return &Pager{content: content}
}

// Run takes over the terminal and blocks until the pager exits
func (p *Pager) Run() error {
	root, err := oviewer.NewRoot(bytes.NewReader(p.content))
	if err != nil {
		return err
	}

	// Keep the document off the terminal after exit, the UI redraws itself
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// ov opens the terminal itself
func (p *Pager) SetStdin(io.Reader)  {}
func (p *Pager) SetStdout(io.Writer) {}
func (p *Pager) SetStderr(io.Writer) {}
