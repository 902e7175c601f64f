// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

/*
Package supervisor runs the long-lived parts of the service under a suture
supervisor tree.

	root ("life-os")
	├── data-layer: cache maintenance (badger value-log GC, LRU sweep)
	└── api-layer:  HTTP server

A service that returns an error or panics is restarted by its parent with
suture's failure decay and backoff. A crash in the data layer does not stop
the API layer from serving requests; the cache simply grows until
maintenance resumes.

Supervisor events are logged through sutureslog, bridged onto the process
zerolog logger by logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCacheMaintenanceService(db, cachedClient, cfg.Cache))
	tree.AddAPIService(services.NewHTTPServerService(server, services.HTTPServiceConfig{
		Addr:           server.Addr,
		BeforeShutdown: handler.SetDraining,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
