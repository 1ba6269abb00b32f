package ecdsasig

//go:generate mockgen -destination=mocks_test.go -package=$GOPACKAGE . Backend,Logger
