/*
Package tree implements a small generic tree type, the skeleton of widget trees.

Nodes carry a payload of a type parameter. Styled widget nodes (package
dom/styledtree) embed a tree node and point the payload back to themselves,
giving us composition instead of sub-classing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree
