/*Package interval provides the coordinate model shared by the bio-permute
  randomizers and overlap counters: a genome that concatenates its
  chromosomes into one global coordinate space, interval sets sorted in that
  space, merged interval unions supporting binary/galloping search, and
  loaders for BED and chromosome-size files.
  It assumes every position fits in a PosType, which is defined as int64
  since concatenated-genome coordinates overflow the int32 positions BAM
  files are limited to.
*/
package interval
