// Package pkgconfig reads service configuration through the Config interface.
//
// Viper is the production implementation: it loads a YAML file and lets
// GOPAY_* environment variables override any key. Durations use Go syntax
// ("50ms", "5s") and binary values such as the JWT secret are base64.
package pkgconfig
