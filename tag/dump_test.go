package tag

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDump(t *testing.T) {
	root := NewCompound("out",
		mustList(t, "ListTest", NewString("", "Hi"), NewString("", "Goodbye")),
		NewInt("n", -3),
		NewFloat("f", 0.5),
		NewUByte("u", 200),
		NewIntArray("a", []int32{1, 2}),
		mustList(t, "none"),
		NewCompound("c"),
	)

	want := `Compound("out"): 7 entries {
  List("ListTest"): 2 entries of String {
    String[0]: "Hi"
    String[1]: "Goodbye"
  }
  Int("n"): -3
  Float("f"): 0.5
  UByte("u"): 200
  IntArray("a"): 2 entries
  List("none"): 0 entries
  Compound("c"): 0 entries
}
`
	if diff := cmp.Diff(want, Dump(root)); diff != "" {
		t.Errorf("Dump (-want +got):\n%s", diff)
	}
}

func TestFprintOptions(t *testing.T) {
	root := NewCompound("r", NewByteArray("b", []int8{-1, 1}))

	var b strings.Builder
	err := Fprint(&b, root, DumpOptions{
		Indent:     "\t",
		FullArrays: true,
		Style: func(p Part, s string) string {
			if p == PartValue {
				return "<" + s + ">"
			}
			return s
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := "Compound(\"r\"): 1 entry {\n" +
		"\tByteArray(\"b\"): 2 entries\n" +
		"\t\t<-1>\n" +
		"\t\t<1>\n" +
		"}\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("Fprint (-want +got):\n%s", diff)
	}
}

func TestDumpEnd(t *testing.T) {
	if got := Dump(&End{}); got != "End\n" {
		t.Errorf("got %q", got)
	}
}
