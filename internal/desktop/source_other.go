//go:build !windows

package desktop

import "time"

// SystemSource is unavailable outside Windows.
type SystemSource struct{}

var _ Source = (*SystemSource)(nil)

// NewSystemSource always fails with ErrUnsupportedPlatform.
func NewSystemSource(time.Duration) (*SystemSource, error) {
	return nil, ErrUnsupportedPlatform
}

func (s *SystemSource) Desktops() ([]Desktop, error) { return nil, ErrUnsupportedPlatform }

func (s *SystemSource) Current() (Desktop, error) { return Desktop{}, ErrUnsupportedPlatform }

func (s *SystemSource) Watch(Handler) (Registration, error) { return nil, ErrUnsupportedPlatform }

func (s *SystemSource) SwitchTo(ID) error { return ErrUnsupportedPlatform }

func (s *SystemSource) Create() error { return ErrUnsupportedPlatform }

func (s *SystemSource) Remove(ID) error { return ErrUnsupportedPlatform }

func (s *SystemSource) SetWallpaper(ID, string) error { return ErrUnsupportedPlatform }
