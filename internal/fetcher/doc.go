// Package fetcher retrieves page documents over HTTP.
//
// A fetch makes at most two attempts: first over HTTP/2 with a full
// browser-like header set, then once more over HTTP/1.1 with a different
// identity when the first attempt fails. Sites behind aggressive filtering
// often reject one protocol or one identity but not both; a single bounded
// fallback recovers most of them without letting worst-case latency grow.
package fetcher
