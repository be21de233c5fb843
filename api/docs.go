package api

// @title Querry API
// @version v1.0.0
// @description Local API over the Querry collection store, used by the web front-end.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8779
// @BasePath /api
// @schemes http
