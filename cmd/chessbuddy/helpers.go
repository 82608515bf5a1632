package main

import "github.com/HendrikReh/chessbuddy/internal/chessmodel"

func optString(v string) chessmodel.Option[string] {
	if v == "" {
		return chessmodel.None[string]()
	}
	return chessmodel.Some(v)
}

func optFloat(v float64) chessmodel.Option[float64] {
	return chessmodel.Some(v)
}

func chessmodelColor(v string) chessmodel.Option[chessmodel.Color] {
	switch v {
	case "white":
		return chessmodel.Some(chessmodel.White)
	case "black":
		return chessmodel.Some(chessmodel.Black)
	default:
		return chessmodel.None[chessmodel.Color]()
	}
}
