package web

import (
	"crypto/rand"
	"log"
	"math/big"
	"net"

	"github.com/nats-io/nuid"
	"github.com/pkg/errors"
	hashids "github.com/speps/go-hashids"
)

// generate a short useful unique name - hashid in this case
func GenerateName() string {

	name := "rubric-web"

	number0, err := rand.Int(rand.Reader, big.NewInt(10000000))
	if err != nil {
		log.Println("error generating random name seed: ", err)
		return name
	}

	hd := hashids.NewData()
	hd.Salt = "rubric-web random name generator"
	hd.MinLength = 5
	h, err := hashids.NewWithData(hd)
	if err != nil {
		log.Println("error auto-generating name: ", err)
		return name
	}
	e, err := h.EncodeInt64([]int64{number0.Int64()})
	if err != nil {
		log.Println("error encoding auto-generated name: ", err)
		return name
	}
	return e
}

// generate a unique id - nuid in this case
func GenerateID() string {
	return nuid.Next()
}

// find an available tcp port
func AvailablePort() (int, error) {

	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, errors.Wrap(err, "cannot acquire a tcp port")
	}
	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port, nil
}
