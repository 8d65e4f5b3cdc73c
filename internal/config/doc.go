// Package config provides configuration parsing for elmen projects.
//
// The configuration is stored in elmen.json at the project root.
// This package handles loading, saving, and validating configuration.
// Command line flags override the values loaded here.
//
// # Configuration File Structure
//
//	{
//	  "verbosity": "high",
//	  "render": {
//	    "host": "vdom",
//	    "pretty": true,
//	    "indent": "    ",
//	    "markListeners": true
//	  },
//	  "metrics": true,
//	  "namespace": "elmen",
//	  "trace": false
//	}
//
// # Usage
//
//	cfg, err := config.Discover(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Verbosity:", cfg.BuilderVerbosity())
package config
