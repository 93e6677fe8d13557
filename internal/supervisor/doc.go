// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

/*
Package supervisor runs the long-lived parts of the curator server under a
suture v4 supervisor tree.

	curator
	├── data-layer
	│   └── history-gc       (badger backend only)
	├── messaging-layer
	│   └── feedback-consumer
	└── api-layer
	    └── http-server

Crashed services restart with suture's backoff. Cancelling the context passed
to Serve stops every service, each bounded by ShutdownTimeout; services that
do not return in time show up in UnstoppedServiceReport.

Supervisor events (start, failure, backoff) go to log/slog through
sutureslog; cmd/server bridges that logger to zerolog with
logging.NewSlogLogger.

	tree := supervisor.NewSupervisorTree(slogger, supervisor.TreeConfigFrom(cfg.Supervisor))
	tree.AddMessagingService(consumer)
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Supervisor.ShutdownTimeout))
	err := tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
