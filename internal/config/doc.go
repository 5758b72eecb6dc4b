// Package config provides configuration parsing for coursebook.
//
// The configuration is stored in coursebook.json in the working directory.
// Every field is optional; missing fields take the defaults from New.
// Command-line flags override file values.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "0.0.0.0",
//	    "port": 8080
//	  },
//	  "catalog": {
//	    "s3": {
//	      "bucket": "coursebook-data",
//	      "key": "catalog.json",
//	      "region": "ap-northeast-1"
//	    }
//	  },
//	  "search": {
//	    "syncDebounceMs": 500,
//	    "searchDebounceMs": 300
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "tracing": {
//	    "enabled": false
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "json"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
