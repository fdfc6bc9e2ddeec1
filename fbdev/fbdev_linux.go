//go:build linux

package fbdev

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/phanxgames/fbui"
)

const (
	ioctlGetVScreenInfo = 0x4600
	ioctlGetFScreenInfo = 0x4602
	ioctlPanDisplay     = 0x4606

	activateNow   = 0
	activateForce = 128
)

type device struct {
	fd     int
	mem    []byte
	vinfo  varScreenInfo
	finfo  fixScreenInfo
	noPan  bool
	opened bool
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func (d *device) open(path string) (fbui.Target, error) {
	if d.opened {
		return fbui.Target{}, errors.New("fbdev: already open")
	}
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return fbui.Target{}, fmt.Errorf("fbdev: open %s: %w", path, err)
	}
	if err := ioctl(fd, ioctlGetVScreenInfo, unsafe.Pointer(&d.vinfo)); err != nil {
		unix.Close(fd)
		return fbui.Target{}, fmt.Errorf("fbdev: FBIOGET_VSCREENINFO: %w", err)
	}
	if err := ioctl(fd, ioctlGetFScreenInfo, unsafe.Pointer(&d.finfo)); err != nil {
		unix.Close(fd)
		return fbui.Target{}, fmt.Errorf("fbdev: FBIOGET_FSCREENINFO: %w", err)
	}
	mem, err := unix.Mmap(fd, 0, int(d.finfo.SmemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return fbui.Target{}, fmt.Errorf("fbdev: mmap %d bytes: %w", d.finfo.SmemLen, err)
	}
	t, err := target(mem, &d.vinfo, &d.finfo)
	if err != nil {
		_ = unix.Munmap(mem)
		unix.Close(fd)
		return fbui.Target{}, err
	}
	d.fd, d.mem, d.opened = fd, mem, true
	return t, nil
}

// present pans to the first page, which makes drivers without automatic
// refresh flush the buffer. Drivers that cannot pan are not asked again.
func (d *device) present() error {
	if !d.opened {
		return errors.New("fbdev: not open")
	}
	if d.noPan {
		return nil
	}
	v := d.vinfo
	v.XOffset, v.YOffset = 0, 0
	v.Activate = activateNow | activateForce
	if err := ioctl(d.fd, ioctlPanDisplay, unsafe.Pointer(&v)); err != nil {
		if errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENOTTY) {
			d.noPan = true
			return nil
		}
		return fmt.Errorf("fbdev: FBIOPAN_DISPLAY: %w", err)
	}
	return nil
}

func (d *device) close() error {
	if !d.opened {
		return nil
	}
	d.opened = false
	errUnmap := unix.Munmap(d.mem)
	d.mem = nil
	errClose := unix.Close(d.fd)
	return errors.Join(errUnmap, errClose)
}
