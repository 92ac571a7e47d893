// Command fixengine is the order-management simulator: a FIX 4.2 session
// server, a single-shot client driver, and a concurrent benchmark driver.
package main

func main() {
	Execute()
}
