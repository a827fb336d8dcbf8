package http

var RegisterStatic = registerStatic
