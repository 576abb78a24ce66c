// Package codec provides per-format decode and encode functions between
// raw config file text and the generic ir tree. All four formats keep
// document order: keys and tables decode in the order they appear and
// encode back in tree order.
package codec
