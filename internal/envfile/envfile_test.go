package envfile

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEnvFile = "some_key=some_value\n" +
	"   spaces_at_the_beginning_of_the_line=42442\n" +
	"spaces_at_the_end_of_the_line=afd@R@3fSD%^    \n" +
	"spaces_around_equals_sign = some_value\n" +
	"UPPERCASE_KEY=%4t2423528$!\n" +
	"case_Sensitivity_Test=^^^$#$%#==#%$#\n" +
	"empty_key_one=\n" +
	"    empty_key_two=    \n" +
	"    spaces_in_the_quotes    =    \"    \"    \n" +
	"a_lot_of_equals_signs_one=======\n" +
	"a_lot_of_equals_signs_two    =    ======    \n" +
	"a_lot_of_equals_signs_three    =    \"======\"    \n"

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key    string
		reason string
	}{
		{"wrong_key=", ReasonContainsEquals},
		{"wrong key", ReasonInvalidChars},
		{"1test", ReasonInvalidChars},
		{"test_1", ReasonInvalidChars},
		{"111", ReasonInvalidChars},
		{"test!", ReasonInvalidChars},
		{"!!!!", ReasonInvalidChars},
		{"$", ReasonInvalidChars},
		{"", ReasonInvalidChars},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := ValidateKey(tt.key)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))

			var invalid *InvalidArgumentError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.reason, invalid.Reason)
			assert.Equal(t, tt.key, invalid.Arg)
		})
	}

	good := map[string]string{
		"_":              "_",
		"a":              "A",
		"test":           "TEST",
		"thisIsTest":     "THISISTEST",
		"UPPERCASE_TEST": "UPPERCASE_TEST",
	}
	for in, want := range good {
		got, err := ValidateKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
}

func strPtr(s string) *string { return &s }

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		keyArg    string
		valueArg  *string
		wantKey   string
		wantValue string
	}{
		{"separate", "SOME_KEY", strPtr("some_value"), "SOME_KEY", "some_value"},
		{"pair", "SOME_KEY=some_value", nil, "SOME_KEY", "some_value"},
		{"equals in value", "SOME_KEY==some=value===", nil, "SOME_KEY", "=some=value==="},
		{"empty after equals", "some_key=", nil, "some_key", ""},
		{"no equals no value", "some_key", nil, "some_key", ""},
		{"double quoted pair", `some_key="some_value"`, nil, "some_key", `"some_value"`},
		{"double quoted value", "some_key", strPtr(`"some_value"`), "some_key", `"some_value"`},
		{"single quoted pair", "some_key='some_value'", nil, "some_key", "'some_value'"},
		{"spaces pair", "some_key=some value", nil, "some_key", `"some value"`},
		{"spaces value", "some_key", strPtr("some value"), "some_key", `"some value"`},
		{"quoted spaces pair", `some_key="some value"`, nil, "some_key", `"some value"`},
		{"single quoted spaces", "some_key", strPtr("'some value'"), "some_key", "'some value'"},
		{"value keeps key untouched", "a=b", strPtr("c"), "a=b", "c"},
		{"equals alone not quoted", "k", strPtr("a=b"), "k", "a=b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value := Split(tt.keyArg, tt.valueArg)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"42", "42"},
		{"", ""},
		{"this is a value", `"this is a value"`},
		{"tab\there", "\"tab\there\""},
		{"a=b", `"a=b"`},
		{"=========", `"========="`},
		{`"already quoted"`, `"already quoted"`},
		{`'single = quoted'`, `'single = quoted'`},
		{`"mismatched value'`, `""mismatched value'"`},
		{`"`, `"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Quote(tt.in), "Quote(%q)", tt.in)
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"some_key", "some_key=some_value"},
		{"spaces_at_the_beginning_of_the_line", "   spaces_at_the_beginning_of_the_line=42442"},
		{"spaces_at_the_end_of_the_line", "spaces_at_the_end_of_the_line=afd@R@3fSD%^    "},
		{"spaces_around_equals_sign", "spaces_around_equals_sign = some_value"},
		{"UPPERCASE_KEY", "UPPERCASE_KEY=%4t2423528$!"},
		{"case_Sensitivity_Test", "case_Sensitivity_Test=^^^$#$%#==#%$#"},
		{"case_sensitivity_test", "case_Sensitivity_Test=^^^$#$%#==#%$#"},
		{"CASE_SENSITIVITY_TEST", "case_Sensitivity_Test=^^^$#$%#==#%$#"},
		{"empty_key_one", "empty_key_one="},
		{"empty_key_two", "    empty_key_two=    "},
		{"spaces_in_the_quotes", `    spaces_in_the_quotes    =    "    "    `},
		{"a_lot_of_equals_signs_one", "a_lot_of_equals_signs_one======="},
		{"a_lot_of_equals_signs_two", "a_lot_of_equals_signs_two    =    ======    "},
		{"a_lot_of_equals_signs_three", `a_lot_of_equals_signs_three    =    "======"    `},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := Locate(testEnvFile, tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Locate(testEnvFile, "not_existed_key")
	assert.False(t, ok)
	_, ok = Locate(testEnvFile, "")
	assert.False(t, ok)
}

func TestLocatePrefixSafety(t *testing.T) {
	content := "PUSHER_APP_KEY=pusher\nAPP_KEYS=many\n# APP_KEY=commented\nAPP_KEY=app\n"

	got, ok := Locate(content, "APP_KEY")
	require.True(t, ok)
	assert.Equal(t, "APP_KEY=app", got)

	_, ok = Locate("PUSHER_APP_KEY=pusher\n", "APP_KEY")
	assert.False(t, ok)
}

func TestLocateFirstMatchWins(t *testing.T) {
	got, ok := Locate("DUP=one\ndup=two\n", "DUP")
	require.True(t, ok)
	assert.Equal(t, "DUP=one", got)
}

func TestLocateCRLF(t *testing.T) {
	got, ok := Locate("A=1\r\nB=2\r\n", "b")
	require.True(t, ok)
	assert.Equal(t, "B=2", got)
}

func TestLocateASCIIFoldingOnly(t *testing.T) {
	// U+212A KELVIN SIGN and U+017F LONG S fold to K and S under Unicode rules
	content := "\u212AEY=kelvin\nKEY=real\n\u017FECRET=long\nsecret=short\n"

	got, ok := Locate(content, "KEY")
	require.True(t, ok)
	assert.Equal(t, "KEY=real", got)

	got, ok = Locate(content, "SECRET")
	require.True(t, ok)
	assert.Equal(t, "secret=short", got)

	out, created := Rewrite(content, "KEY", "x")
	assert.False(t, created)
	assert.Equal(t, "\u212AEY=kelvin\nKEY=x\n\u017FECRET=long\nsecret=short\n", out)
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"simple", "some_key", "new_value",
			strings.Replace(testEnvFile, "some_key=some_value", "some_key=new_value", 1)},
		{"leading spaces", "spaces_at_the_beginning_of_the_line", "@#$#@R(@#R",
			strings.Replace(testEnvFile, "   spaces_at_the_beginning_of_the_line=42442",
				"spaces_at_the_beginning_of_the_line=@#$#@R(@#R", 1)},
		{"case", "CASE_SENSITIVITY_TEST", "%@#ddddd",
			strings.Replace(testEnvFile, "case_Sensitivity_Test=^^^$#$%#==#%$#",
				"CASE_SENSITIVITY_TEST=%@#ddddd", 1)},
		{"new key", "new_not_existed_key", "value",
			testEnvFile + "\nnew_not_existed_key=value\n"},
		{"assign empty", "some_key", "",
			strings.Replace(testEnvFile, "some_key=some_value", "some_key=", 1)},
		{"update empty", "empty_key_one", "new_value",
			strings.Replace(testEnvFile, "empty_key_one=", "empty_key_one=new_value", 1)},
		{"update blank", "empty_key_two", "x",
			strings.Replace(testEnvFile, "    empty_key_two=    ", "empty_key_two=x", 1)},
		{"create empty", "new_not_existed_key", "",
			testEnvFile + "\nnew_not_existed_key=\n"},
		{"equals signs", "a_lot_of_equals_signs_one", "new_value",
			strings.Replace(testEnvFile, "a_lot_of_equals_signs_one=======",
				"a_lot_of_equals_signs_one=new_value", 1)},
		{"quoted equals signs", "a_lot_of_equals_signs_three", "new_value",
			strings.Replace(testEnvFile, `a_lot_of_equals_signs_three    =    "======"    `,
				"a_lot_of_equals_signs_three=new_value", 1)},
		{"value of equals", "some_key", "=========",
			strings.Replace(testEnvFile, "some_key=some_value", `some_key="========="`, 1)},
		{"value with spaces", "some_key", "this is a value",
			strings.Replace(testEnvFile, "some_key=some_value", `some_key="this is a value"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Rewrite(testEnvFile, tt.key, tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteEndToEnd(t *testing.T) {
	got, created := Rewrite("some_key=some_value\n", "some_key", "new_value")
	assert.False(t, created)
	assert.Equal(t, "some_key=new_value\n", got)

	got, created = Rewrite("", "new_key", "value")
	assert.True(t, created)
	assert.Equal(t, "\nnew_key=value\n", got)
}

func TestRewriteOnlyTouchesTarget(t *testing.T) {
	content := "# header\nPUSHER_APP_KEY=pusher\n\n  APP_KEY = old  \nOTHER=1\n"

	got, created := Rewrite(content, "APP_KEY", "new")
	require.False(t, created)
	assert.Equal(t, "# header\nPUSHER_APP_KEY=pusher\n\nAPP_KEY=new\nOTHER=1\n", got)

	before := strings.Split(content, "\n")
	after := strings.Split(got, "\n")
	require.Len(t, after, len(before))
	for i := range before {
		if i == 3 {
			continue
		}
		assert.Equal(t, before[i], after[i], "line %d", i)
	}
}

func TestRewriteKeepsCRLF(t *testing.T) {
	got, created := Rewrite("A=1\r\nB=2\r\n", "B", "3")
	assert.False(t, created)
	assert.Equal(t, "A=1\r\nB=3\r\n", got)
}

func TestRewriteIdempotent(t *testing.T) {
	content := "X=1\n  KEY = old # trailing\nY=2\n"

	once, _ := Rewrite(content, "KEY", "same value")
	twice, created := Rewrite(once, "KEY", "same value")
	assert.False(t, created)
	assert.Equal(t, once, twice)
}

func TestRewriteAppendRoundTrip(t *testing.T) {
	content := "A=1\n"
	got, created := Rewrite(content, "B", "x=y z")
	require.True(t, created)
	assert.Equal(t, content+"\nB=\"x=y z\"\n", got)

	line, ok := Locate(got, "B")
	require.True(t, ok)
	assert.Equal(t, `B="x=y z"`, line)
}

func TestHistoryComment(t *testing.T) {
	now := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "", HistoryComment("old_key=old_value", false, now))
	assert.Equal(t,
		"# old_key=old_value # Edited: 2020-01-01 12:00:00\n",
		HistoryComment("old_key=old_value", true, now))
}

func TestRewriterHistory(t *testing.T) {
	now := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	r := Rewriter{History: true, Now: func() time.Time { return now }}

	res := r.Rewrite("A=1\nKEY=old\nB=2\n", "KEY", "new")
	require.False(t, res.Created)
	assert.Equal(t, "A=1\n# KEY=old # Edited: 2020-01-01 12:00:00\nKEY=new\nB=2\n", res.Content)
	assert.Equal(t, "KEY=old", res.OldLine)
	assert.Equal(t, "old", res.OldValue())

	again := r.Rewrite(res.Content, "KEY", "newer")
	assert.Equal(t, "KEY=new", again.OldLine)
	assert.Equal(t,
		"A=1\n# KEY=old # Edited: 2020-01-01 12:00:00\n# KEY=new # Edited: 2020-01-01 12:00:00\nKEY=newer\nB=2\n",
		again.Content)

	created := r.Rewrite("", "NEW", "v")
	assert.True(t, created.Created)
	assert.Equal(t, "\nNEW=v\n", created.Content)
	assert.Equal(t, "", created.OldValue())
}

func TestRewriterSet(t *testing.T) {
	r := Rewriter{}

	res, err := r.Set("SOME_KEY=old\n", "some_key=some value", nil)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "SOME_KEY=\"some value\"\n", res.Content)

	res, err = r.Set("", "new_key", strPtr("value"))
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "\nNEW_KEY=value\n", res.Content)

	res, err = r.Set("A=1\n", "bad_key=", strPtr("x"))
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "A=1\n", res.Content)

	_, err = r.Set("A=1\n", "test_1=x", nil)
	var invalid *InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, ReasonInvalidChars, invalid.Reason)
}
