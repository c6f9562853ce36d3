package httpserver

import "net/http"

func (s *HTTPServer) routes() {
	s.public("GET /ping", http.HandlerFunc(s.ping))

	s.public("POST /users/register", http.HandlerFunc(s.registerUser))
	s.public("POST /users/login", http.HandlerFunc(s.loginUser))
	s.authenticated("GET /users/me", http.HandlerFunc(s.me))
	s.authenticated("PATCH /users/{id}", http.HandlerFunc(s.updateUser))
	s.authenticated("PUT /users/update/{id}", http.HandlerFunc(s.updateUser))

	s.public("GET /resources", http.HandlerFunc(s.listResources))
	s.public("GET /resources/list-resources", http.HandlerFunc(s.listResources))
	s.public("GET /resources/{id}", http.HandlerFunc(s.getResource))

	s.authenticated("POST /resources", http.HandlerFunc(s.createResource))
	s.authenticated("POST /resources/create-resource", http.HandlerFunc(s.createResource))
	s.authenticated("PATCH /resources/{id}", http.HandlerFunc(s.updateResource))
	s.authenticated("PUT /resources/update-resource/{id}", http.HandlerFunc(s.updateResource))
	s.authenticated("DELETE /resources/{id}", http.HandlerFunc(s.deleteResource))
	s.authenticated("DELETE /resources/delete-resource/{id}", http.HandlerFunc(s.deleteResource))
}

func (s *HTTPServer) public(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
}

func (s *HTTPServer) authenticated(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, s.requireSession(handler))
}
