package finfo_test

import (
	"fmt"
	"strings"

	"github.com/gobeaver/finfo"
)

func ExampleParseInfo() {
	table, err := finfo.ParseInfo("stat,ls:lstat+readlink")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(table)
	fmt.Println(table.Children())
	fmt.Println(table.Children().Children())
	// Output:
	// stat,ls:lstat+readlink
	// lstat,readlink
	// stat
}

func ExampleParseInfo_recursive() {
	table, _ := finfo.ParseInfo("stat,recursive")

	fmt.Println(table)
	fmt.Println("Same table for children:", table.Children() == table)
	// Output:
	// stat,recursive
	// Same table for children: true
}

func ExampleParseInfo_invalid() {
	_, err := finfo.ParseInfo("stat:ls")

	fmt.Println(err)
	fmt.Println("Invalid argument:", finfo.IsInvalidArgument(err))
	// Output:
	// invalid oplist: stat: operation does not accept options
	// Invalid argument: true
}

func ExampleOps() {
	for _, op := range finfo.Ops() {
		fmt.Printf("%-8s %v\n", op, op.DefaultEnabled())
	}
	// Output:
	// stat     true
	// lstat    false
	// readlink false
	// ls       false
	// digest   false
	// mime     false
}

func ExampleCalculateChecksum() {
	content := "Hello, World!"

	for _, algo := range []finfo.ChecksumAlgorithm{finfo.ChecksumSHA256, finfo.ChecksumMD5, finfo.ChecksumCRC32} {
		sum, err := finfo.CalculateChecksum(strings.NewReader(content), algo)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("%s: %s\n", algo, sum)
	}
	// Output:
	// sha256: dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f
	// md5: 65a8e27d8879283831b664bd8b7f0ad4
	// crc32: ec4ac3d0
}
