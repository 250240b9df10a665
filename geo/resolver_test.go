package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"googlemaps.github.io/maps"

	"github.com/bitmark-inc/neighbourmatch-api/schema"
)

type fakeGeoInfo struct {
	results []maps.GeocodingResult
	err     error
	calls   int
}

func (f *fakeGeoInfo) Get(context.Context, schema.Location) ([]maps.GeocodingResult, error) {
	f.calls++
	return f.results, f.err
}

type failingResolver struct{}

func (failingResolver) ResolveAddress(context.Context, schema.Location) (string, error) {
	return "", errors.New("boom")
}

type ResolverTestSuite struct {
	suite.Suite
	loc schema.Location
}

func (s *ResolverTestSuite) SetupTest() {
	s.loc = schema.Location{Latitude: 12.9716, Longitude: 77.5946}
}

func (s *ResolverTestSuite) TestGeocodingAddress() {
	client := &fakeGeoInfo{results: []maps.GeocodingResult{
		{FormattedAddress: "MG Road, Bengaluru"},
		{FormattedAddress: "Bengaluru"},
	}}

	address, err := NewGeocodingAddressResolver(client).ResolveAddress(context.Background(), s.loc)
	s.NoError(err)
	s.Equal("MG Road, Bengaluru", address)
	s.Equal(1, client.calls)
}

func (s *ResolverTestSuite) TestGeocodingNoResult() {
	_, err := NewGeocodingAddressResolver(&fakeGeoInfo{}).ResolveAddress(context.Background(), s.loc)
	s.Equal(ErrNoGeoInfoFound, err)
}

func (s *ResolverTestSuite) TestGeocodingNotInitialized() {
	_, err := NewGeocodingAddressResolver(nil).ResolveAddress(context.Background(), s.loc)
	s.Equal(ErrResolverNotInitialized, err)
}

func (s *ResolverTestSuite) TestMultipleResolverFallsBack() {
	resolver := NewMultipleAddressResolver(
		NewGeocodingAddressResolver(&fakeGeoInfo{err: errors.New("quota exceeded")}),
		NewStaticAddressResolver(DefaultAddress),
	)

	address, err := resolver.ResolveAddress(context.Background(), s.loc)
	s.NoError(err)
	s.Equal(DefaultAddress, address)
}

func (s *ResolverTestSuite) TestMultipleResolverStopsAtFirstSuccess() {
	second := &fakeGeoInfo{results: []maps.GeocodingResult{{FormattedAddress: "second"}}}
	resolver := NewMultipleAddressResolver(
		NewStaticAddressResolver("first"),
		NewGeocodingAddressResolver(second),
	)

	address, err := resolver.ResolveAddress(context.Background(), s.loc)
	s.NoError(err)
	s.Equal("first", address)
	s.Equal(0, second.calls)
}

func (s *ResolverTestSuite) TestMultipleResolverAggregatesErrors() {
	resolver := NewMultipleAddressResolver(failingResolver{}, failingResolver{})

	_, err := resolver.ResolveAddress(context.Background(), s.loc)
	s.Error(err)
	s.Equal("#0: boom\n#1: boom", err.Error())
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}
