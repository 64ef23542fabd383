package desktop

import "github.com/stretchr/testify/mock"

// MockSource is a testify mock of Source.
//
// Example usage:
//
//	src := new(MockSource)
//	src.On("Desktops").Return([]Desktop{{ID: a, Name: "Work"}}, nil)
//	src.On("Current").Return(Desktop{ID: a}, nil)
type MockSource struct {
	mock.Mock
}

var _ Source = (*MockSource)(nil)

func (m *MockSource) Desktops() ([]Desktop, error) {
	args := m.Called()
	desktops, _ := args.Get(0).([]Desktop)
	return desktops, args.Error(1)
}

func (m *MockSource) Current() (Desktop, error) {
	args := m.Called()
	return args.Get(0).(Desktop), args.Error(1)
}

// Watch returns a mocked registration. Configure with
//
//	src.On("Watch", mock.Anything).Return(NewRegistration(nil), nil)
func (m *MockSource) Watch(handler Handler) (Registration, error) {
	args := m.Called(handler)
	reg, _ := args.Get(0).(Registration)
	return reg, args.Error(1)
}

func (m *MockSource) SwitchTo(id ID) error {
	return m.Called(id).Error(0)
}

func (m *MockSource) Create() error {
	return m.Called().Error(0)
}

func (m *MockSource) Remove(id ID) error {
	return m.Called(id).Error(0)
}

func (m *MockSource) SetWallpaper(id ID, path string) error {
	return m.Called(id, path).Error(0)
}
