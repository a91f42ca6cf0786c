package osm2route

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// RouteConfiguration Allows to tune how route relations are interpreted
type RouteConfiguration struct {
	// OSM member roles treated as main part of the route. Empty role is the common one
	MainRoles []string `toml:"main_roles"`
	// OSM member roles treated as alternatives
	AlternativeRoles []string `toml:"alternative_roles"`
	// Values of `highway` tag where `sac_scale` is expected
	SacScaleHighways []string `toml:"sac_scale_highways"`
	// Treat two segments between the same pair of nodes as topology error
	StrictMode bool `toml:"strict_mode"`
	// Read `ele` tag of nodes as third coordinate
	Elevation bool `toml:"elevation"`

	sacScaleHighways map[HighwayType]struct{}
}

// DefaultRouteConfiguration returns configuration suitable for hiking routes
func DefaultRouteConfiguration() *RouteConfiguration {
	cfg := &RouteConfiguration{
		MainRoles:        []string{"", "main", "forward", "backward"},
		AlternativeRoles: []string{"alternative"},
		SacScaleHighways: make([]string, len(defaultSacScaleHighways)),
		sacScaleHighways: make(map[HighwayType]struct{}, len(defaultSacScaleHighways)),
	}
	for i, highway := range defaultSacScaleHighways {
		cfg.SacScaleHighways[i] = highway.String()
		cfg.sacScaleHighways[highway] = struct{}{}
	}
	return cfg
}

// LoadRouteConfiguration reads TOML file on top of default configuration
func LoadRouteConfiguration(fname string) (*RouteConfiguration, error) {
	cfg := DefaultRouteConfiguration()
	if _, err := toml.DecodeFile(fname, cfg); err != nil {
		return nil, errors.Wrap(err, "Can't decode configuration")
	}
	if err := cfg.prepare(); err != nil {
		return nil, errors.Wrap(err, "Bad configuration")
	}
	return cfg, nil
}

func (cfg *RouteConfiguration) prepare() error {
	cfg.sacScaleHighways = make(map[HighwayType]struct{}, len(cfg.SacScaleHighways))
	for _, highway := range cfg.SacScaleHighways {
		highwayType := getHighwayType(highway)
		if highwayType == 0 {
			return fmt.Errorf("Unhandled `highway` value '%s' in sac_scale_highways", highway)
		}
		cfg.sacScaleHighways[highwayType] = struct{}{}
	}
	return nil
}

// RoleOf maps OSM member role to route role
func (cfg *RouteConfiguration) RoleOf(osmRole string) Role {
	for i := range cfg.MainRoles {
		if cfg.MainRoles[i] == osmRole {
			return ROLE_MAIN
		}
	}
	for i := range cfg.AlternativeRoles {
		if cfg.AlternativeRoles[i] == osmRole {
			return ROLE_ALTERNATIVE
		}
	}
	return ROLE_OTHER
}

// CheckSacScaleHighway Checks if `sac_scale` is expected for given value of `highway` tag
func (cfg *RouteConfiguration) CheckSacScaleHighway(highway string) bool {
	highwayType := getHighwayType(highway)
	if highwayType == 0 {
		return false
	}
	if cfg.sacScaleHighways != nil {
		_, ok := cfg.sacScaleHighways[highwayType]
		return ok
	}
	for i := range cfg.SacScaleHighways {
		if getHighwayType(cfg.SacScaleHighways[i]) == highwayType {
			return true
		}
	}
	return false
}
