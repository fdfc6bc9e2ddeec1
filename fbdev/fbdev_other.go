//go:build !linux

package fbdev

import "github.com/phanxgames/fbui"

type device struct{}

func (d *device) open(string) (fbui.Target, error) { return fbui.Target{}, ErrUnsupported }
func (d *device) present() error                   { return ErrUnsupported }
func (d *device) close() error                     { return nil }
