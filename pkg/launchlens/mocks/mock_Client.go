// Package mocks provides test doubles for the launchlens client.
package mocks

import (
	"context"

	launchlens "github.com/sells-group/launchlens/pkg/launchlens"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// Login provides a mock function with given fields: ctx, username, password
func (_m *MockClient) Login(ctx context.Context, username string, password string) (*launchlens.Token, error) {
	ret := _m.Called(ctx, username, password)

	if len(ret) == 0 {
		panic("no return value specified for Login")
	}

	var r0 *launchlens.Token
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) (*launchlens.Token, error)); ok {
		return rf(ctx, username, password)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *launchlens.Token); ok {
		r0 = rf(ctx, username, password)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*launchlens.Token)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, username, password)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Me provides a mock function with given fields: ctx
func (_m *MockClient) Me(ctx context.Context) (*launchlens.Profile, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Me")
	}

	var r0 *launchlens.Profile
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (*launchlens.Profile, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) *launchlens.Profile); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*launchlens.Profile)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Analyze provides a mock function with given fields: ctx, req
func (_m *MockClient) Analyze(ctx context.Context, req launchlens.AnalyzeRequest) ([]byte, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Analyze")
	}

	var r0 []byte
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, launchlens.AnalyzeRequest) ([]byte, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, launchlens.AnalyzeRequest) []byte); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, launchlens.AnalyzeRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// History provides a mock function with given fields: ctx
func (_m *MockClient) History(ctx context.Context) ([]launchlens.HistoryEntry, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for History")
	}

	var r0 []launchlens.HistoryEntry
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]launchlens.HistoryEntry, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []launchlens.HistoryEntry); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]launchlens.HistoryEntry)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// HistoryRecord provides a mock function with given fields: ctx, id
func (_m *MockClient) HistoryRecord(ctx context.Context, id launchlens.ID) (*launchlens.HistoryRecord, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for HistoryRecord")
	}

	var r0 *launchlens.HistoryRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, launchlens.ID) (*launchlens.HistoryRecord, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, launchlens.ID) *launchlens.HistoryRecord); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*launchlens.HistoryRecord)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, launchlens.ID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Countries provides a mock function with given fields: ctx
func (_m *MockClient) Countries(ctx context.Context) ([]launchlens.Region, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Countries")
	}

	var r0 []launchlens.Region
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]launchlens.Region, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []launchlens.Region); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]launchlens.Region)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// States provides a mock function with given fields: ctx, countryCode
func (_m *MockClient) States(ctx context.Context, countryCode string) ([]launchlens.Region, error) {
	ret := _m.Called(ctx, countryCode)

	if len(ret) == 0 {
		panic("no return value specified for States")
	}

	var r0 []launchlens.Region
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]launchlens.Region, error)); ok {
		return rf(ctx, countryCode)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []launchlens.Region); ok {
		r0 = rf(ctx, countryCode)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]launchlens.Region)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, countryCode)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	mock := &MockClient{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
