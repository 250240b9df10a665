package geo

import (
	"context"
	"fmt"
	"strings"

	"github.com/bitmark-inc/neighbourmatch-api/external/geoinfo"
	"github.com/bitmark-inc/neighbourmatch-api/schema"
)

var (
	ErrNoGeoInfoFound         = fmt.Errorf("no geo information found")
	ErrResolverNotInitialized = fmt.Errorf("address resolver is not initialized")
)

// DefaultAddress is used when no address could be resolved for a coordinate
const DefaultAddress = "Location captured"

// AddressResolver - interface for resolving a human readable address
type AddressResolver interface {
	ResolveAddress(context.Context, schema.Location) (string, error)
}

type MultipleResolverErrors struct {
	errors []error
}

func (e *MultipleResolverErrors) Error() string {
	errorStrings := make([]string, len(e.errors))
	for i, err := range e.errors {
		errorStrings[i] = fmt.Sprintf("#%d: %s", i, err.Error())
	}
	return strings.Join(errorStrings, "\n")
}

func NewMultipleResolverErrors(errors []error) *MultipleResolverErrors {
	return &MultipleResolverErrors{
		errors: errors,
	}
}

type GeocodingAddressResolver struct {
	client geoinfo.GeoInfo
}

func NewGeocodingAddressResolver(client geoinfo.GeoInfo) *GeocodingAddressResolver {
	return &GeocodingAddressResolver{
		client: client,
	}
}

func (g *GeocodingAddressResolver) ResolveAddress(ctx context.Context, loc schema.Location) (string, error) {
	if g.client == nil {
		return "", ErrResolverNotInitialized
	}

	geos, err := g.client.Get(ctx, loc)
	if nil != err {
		return "", err
	}

	if len(geos) == 0 || geos[0].FormattedAddress == "" {
		return "", ErrNoGeoInfoFound
	}

	return geos[0].FormattedAddress, nil
}

// StaticAddressResolver always answers the same address
type StaticAddressResolver struct {
	address string
}

func NewStaticAddressResolver(address string) *StaticAddressResolver {
	return &StaticAddressResolver{
		address: address,
	}
}

func (r *StaticAddressResolver) ResolveAddress(context.Context, schema.Location) (string, error) {
	return r.address, nil
}

type MultipleAddressResolver struct {
	resolvers []AddressResolver
}

func NewMultipleAddressResolver(resolvers ...AddressResolver) *MultipleAddressResolver {
	return &MultipleAddressResolver{
		resolvers: resolvers,
	}
}

// ResolveAddress returns the answer of the first resolver that succeeds
func (r *MultipleAddressResolver) ResolveAddress(ctx context.Context, loc schema.Location) (string, error) {
	var errors []error
	for _, resolver := range r.resolvers {
		address, err := resolver.ResolveAddress(ctx, loc)
		if err != nil {
			errors = append(errors, err)
		} else {
			return address, nil
		}
	}

	return "", NewMultipleResolverErrors(errors)
}
