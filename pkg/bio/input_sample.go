package bio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pbanos/ripeness/dataset"
)

/*
ChannelValueRequester represents a way to ask for the value of a color
channel and reject the given values.
*/
type ChannelValueRequester interface {
	RequestValueFor(channel string) error
	RejectValueFor(channel string, value string) error
}

/*
ReadColor takes an io.Reader and a ChannelValueRequester and returns a
Color read from the reader, or an error.

Channels are read in red, green, blue order. Each is first requested with
the ChannelValueRequester and then lines are read from the reader until one
holds an integer in [0,255]; other lines are rejected with the requester's
RejectValueFor method. An error is returned if the reader ends before the
three channels are read or the requester fails.
*/
func ReadColor(r io.Reader, cvr ChannelValueRequester) (dataset.Color, error) {
	scanner := bufio.NewScanner(r)
	var channels [3]int
	for i, name := range []string{"red", "green", "blue"} {
		err := cvr.RequestValueFor(name)
		if err != nil {
			return dataset.Color{}, err
		}
		v, err := readChannel(scanner, name, cvr)
		if err != nil {
			return dataset.Color{}, err
		}
		channels[i] = v
	}
	return dataset.NewColor(channels[0], channels[1], channels[2])
}

func readChannel(scanner *bufio.Scanner, name string, cvr ChannelValueRequester) (int, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		v, err := strconv.Atoi(line)
		if err == nil && v >= 0 && v <= dataset.MaxChannelValue {
			return v, nil
		}
		err = cvr.RejectValueFor(name, line)
		if err != nil {
			return 0, err
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %v", name, err)
	}
	return 0, fmt.Errorf("reading %s: %v", name, io.ErrUnexpectedEOF)
}
