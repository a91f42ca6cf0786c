package osm2route

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

type Parser struct {
	filename string
	cfg      *RouteConfiguration
	logger   *log.Logger
}

func (parser *Parser) String() string {
	return fmt.Sprintf(`
Route parser parameters:
	filename: '%s'
	main_roles: '%s'
	alternative_roles: '%s'
	sac_scale_highways: '%s'
	strict_mode enabled?: %t
	elevation enabled?: %t
	`,
		parser.filename,
		strings.Join(parser.cfg.MainRoles, ","),
		strings.Join(parser.cfg.AlternativeRoles, ","),
		strings.Join(parser.cfg.SacScaleHighways, ","),
		parser.cfg.StrictMode,
		parser.cfg.Elevation,
	)
}

func NewParser(fileName string, options ...func(*Parser)) *Parser {
	parser := &Parser{
		filename: fileName,
		cfg:      DefaultRouteConfiguration(),
		logger:   log.New(io.Discard),
	}
	for _, option := range options {
		option(parser)
	}
	return parser
}

func WithFilename(fileName string) func(*Parser) {
	return func(parser *Parser) {
		parser.filename = fileName
	}
}

func WithConfiguration(cfg *RouteConfiguration) func(*Parser) {
	return func(parser *Parser) {
		parser.cfg = cfg
	}
}

func WithLogger(logger *log.Logger) func(*Parser) {
	return func(parser *Parser) {
		parser.logger = logger
	}
}

func WithStrictMode(strictMode bool) func(*Parser) {
	return func(parser *Parser) {
		parser.cfg.StrictMode = strictMode
	}
}

func WithElevation(elevation bool) func(*Parser) {
	return func(parser *Parser) {
		parser.cfg.Elevation = elevation
	}
}
