package handler

import (
	"org-service/internal/org"
	"org-service/pkg/jwtutil"
)

var (
	orgService *org.Service
	metaStore  org.Store
	jwtUtil    *jwtutil.JWTUtil
)

// Init wires the handlers to the lifecycle service, metadata store and
// token utility. Must be called once from main before routes are served.
func Init(service *org.Service, store org.Store, jwt *jwtutil.JWTUtil) {
	orgService = service
	metaStore = store
	jwtUtil = jwt
}
