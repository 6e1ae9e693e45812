//go:build !cgo

package window

func Run(_ *Host) error {
	return ErrUnavailable
}
